package livelink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Link an installed dependency to a live checkout of its source"
	MsgResolveShort    = "Resolve and print the link configuration without running it"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgVersionFormat       = "livelink version %s\n  commit: %s\n  built:  %s\n"
	MsgManWritten          = "Man pages written to %s"
	MsgCloneFailureIgnored = "Clone failed; continued with the existing checkout"

	// Error messages
	MsgErrUnknownConfigFormat = "unknown config format %q (want toml, yaml or json)"
	MsgErrUnexpectedArgs      = "unexpected arguments: %v"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat         = "Output format: auto, term, text or json"
	MsgFlagCwd            = "Consuming project directory (default: current directory)"
	MsgFlagDest           = "Directory the repository is cloned under"
	MsgFlagID             = "Package name as installed under node_modules"
	MsgFlagManifest       = "Manifest file read from the installed package"
	MsgFlagDir            = "Clone directory name inside --dest (default: derived from the repository)"
	MsgFlagRepo           = "Repository address (default: read from the installed manifest)"
	MsgFlagNpm            = "Package manager used for install and link"
	MsgFlagAbortOnClone   = "Stop when the clone fails"
	MsgFlagTimeout        = "Kill a package-manager command running longer than this (0 disables)"
	MsgFlagDryRun         = "Show the steps without cloning or running anything"
	MsgFlagConfigFormat   = "Output format: toml, yaml or json"
	MsgFlagConfigDefaults = "Print the annotated built-in defaults instead"
	MsgFlagManDir         = "Directory to write man pages to"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.md
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/resolve-long.md
	msgResolveLongRaw string
	MsgResolveLong    = strings.TrimSpace(msgResolveLongRaw)

	//go:embed msgs/config-long.md
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.md
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/help-template.txt
	msgHelpTemplateRaw string
	MsgHelpTemplate    = strings.TrimSpace(msgHelpTemplateRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
