/*
Copyright © 2025 openfreight
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docintel",
	Short: "Freight document question answering and extraction",
	Long: `docintel ingests logistics documents (PDF, DOCX, TXT), indexes each one
in its own vector store class and answers questions about a document or
extracts a structured shipment record from it using an LLM.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
