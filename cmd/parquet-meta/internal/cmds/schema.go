package cmds

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	parquetmeta "github.com/fraugster/parquet-meta"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

var schemaCmd = &cobra.Command{
	Use:   "schema file-name.parquet",
	Short: "Print the parquet file schema",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			_ = cmd.Usage()
			os.Exit(1)
		}

		reader, err := parquetmeta.OpenFile(args[0])
		if err != nil {
			log.Fatalf("Failed to read the parquet footer: %q", err)
		}
		defer reader.Close()

		fmt.Print(reader.Schema())
	},
}
