// Package cli implements the clustertop command-line interface.
//
// The root command runs the dashboard. Everything else is a small helper
// around it:
//
//	clustertop              - Live cluster dashboard
//	clustertop init         - Create .clustertop.yaml
//	clustertop presets      - List grid presets
//	clustertop version      - Print build information
//	clustertop completion   - Shell completion scripts
//
// # Configuration
//
// Settings are resolved once at start-up: config file, then CLUSTERTOP_*
// environment variables, then global flags. Flags only override a setting
// when they are set explicitly, so an unset --grid never masks the file.
// The merged config is validated before any I/O starts.
//
// # Renderers
//
// When stdout is a terminal the dashboard runs full screen and logs go to
// log.file. Otherwise, or with --headless, frames are printed as plain text
// blocks and logs go to stderr. Both modes share one cancellable context:
// SIGINT, SIGTERM, and q or Ctrl+C inside the dashboard all end the run
// with exit code 0.
package cli
