package cmds

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	parquetmeta "github.com/fraugster/parquet-meta"
)

func init() {
	rootCmd.AddCommand(rowCountCmd)
}

var rowCountCmd = &cobra.Command{
	Use:   "rowcount file-name.parquet",
	Short: "Prints the count of rows in the parquet file, from metadata only",
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

		fmt.Println("Total RowCount:", reader.NumRows())
	},
}
