/*
Copyright © 2025 Your Name

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package handlers

import (
	"fmt"
	"os"

	"github.com/briteco/brief/internal/config"
	"github.com/briteco/brief/internal/logger"
	"github.com/spf13/cobra"
)

var cfgFile string

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "brief",
		Short: "brief researches, writes, and ships The BriteCo Brief newsletter.",
		Long: `brief generates a multi-section insurance agent newsletter: it researches
P&C news across search providers, enriches and ranks the results, writes
the sections with AI assistance, and delivers the assembled issue via
email preview, Google Docs export, or an Ontraport draft campaign.`,
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.brief.yaml)")

	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewResearchCmd())
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewSendCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	logger.Init()

	_, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	if config.Get().App.ConfigFile != "" {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", config.Get().App.ConfigFile)
	}
}
