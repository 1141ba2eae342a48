package cmds

import (
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	parquetmeta "github.com/fraugster/parquet-meta"
)

func init() {
	rootCmd.AddCommand(dumpCmd)
}

var dumpCmd = &cobra.Command{
	Use:   "dump file-name.parquet",
	Short: "Dump the raw footer object graph",
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

		spew.Dump(reader.MetaData())
	},
}
