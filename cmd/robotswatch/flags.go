package main

import "flag"

type AppFlags struct {
	SitesFile        string
	GlobalConfigFile string
}

func ParseFlags() AppFlags {
	sitesFile := flag.String("sites", "", "Path to the CSV site registry (overrides monitor_config.sites_file).")
	sitesFileAlias := flag.String("s", "", "Alias for -sites")

	globalConfigFile := flag.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("c", "", "Alias for -config")

	flag.Parse()

	flags := AppFlags{}

	if *sitesFile != "" {
		flags.SitesFile = *sitesFile
	} else if *sitesFileAlias != "" {
		flags.SitesFile = *sitesFileAlias
	}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	return flags
}
