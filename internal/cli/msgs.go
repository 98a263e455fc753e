package cli

// Command descriptions
const (
	MsgRootShort = "Inspect and rehearse action routing"
	MsgRootLong  = `dispatchr loads a routing manifest of stores and domains, builds the
action dispatcher from it and lets you inspect which handlers an action
reaches, in which order, before any real store code runs.`

	MsgRoutesShort   = "Print the full handler table"
	MsgResolveShort  = "Print the handlers that would run for an action"
	MsgDispatchShort = "Dispatch an action against recorder stores"
	MsgDispatchLong  = `Dispatch creates a fresh dispatch context, dispatches the action with the
optional payload and prints every handler call in the order it ran.

The payload is parsed as YAML, so 42, true, "text" and {id: 7} all work.`
	MsgStoresShort  = "List registered stores"
	MsgDomainsShort = "List registered domains"
	MsgVersionShort = "Print version information"
	MsgVersionLong  = "Print detailed version information including commit hash and build date"
	MsgManShort     = "Generate man pages into a directory"
)

// Flag descriptions
const (
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default is $XDG_CONFIG_HOME/dispatchr/config.toml)"
	MsgFlagManifest = "Routing manifest (.toml, .yaml or .yml)"
	MsgFlagFormat   = "Output format: auto, term, text, json, toml or yaml"
)

// Output
const (
	MsgVersionFormat = "dispatchr version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
	MsgManWritten    = "Man pages written to %s"
)
