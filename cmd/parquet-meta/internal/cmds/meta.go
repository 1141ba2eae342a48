package cmds

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	parquetmeta "github.com/fraugster/parquet-meta"
)

func init() {
	rootCmd.AddCommand(metaCmd)
}

var metaCmd = &cobra.Command{
	Use:   "meta file-name.parquet",
	Short: "print the metadata of the parquet file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			_ = cmd.Usage()
			os.Exit(1)
		}

		if err := metaFile(os.Stdout, args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

func metaFile(w io.Writer, address string) error {
	reader, err := parquetmeta.OpenFile(address)
	if err != nil {
		return fmt.Errorf("failed to read the parquet footer: %w", err)
	}
	defer reader.Close()

	meta := reader.MetaData()
	fmt.Fprintf(w, "File: %s\n", address)
	fmt.Fprintf(w, "Size: %d bytes\n", reader.Size())
	fmt.Fprintf(w, "Version: %d\n", meta.Version)
	fmt.Fprintf(w, "Rows: %d\n", meta.NumRows)
	fmt.Fprintf(w, "Row groups: %d\n", len(meta.RowGroups))
	if meta.CreatedBy != nil {
		fmt.Fprintf(w, "Created by: %s\n", *meta.CreatedBy)
	}
	for _, kv := range meta.KeyValueMetadata {
		value := ""
		if kv.Value != nil {
			value = *kv.Value
		}
		if len(value) > 80 {
			value = value[:80] + "..."
		}
		fmt.Fprintf(w, "Key/value: %s = %s\n", kv.Key, value)
	}

	for i, rg := range meta.RowGroups {
		fmt.Fprintf(w, "\nRow group %d: %d rows, %d bytes\n", i, rg.NumRows, rg.TotalByteSize)

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Column", "Type", "Codec", "Values", "Compressed", "Uncompressed", "Min", "Max", "Nulls"})
		for _, col := range rg.Columns {
			md := col.MetaData
			if md == nil {
				table.Append([]string{"?", "-", "-", "-", "-", "-", "-", "-", "-"})
				continue
			}

			min, max, nulls := "-", "-", "-"
			if st := md.Statistics; st != nil {
				var elem = columnElement(reader, md.PathInSchema)
				min = parquetmeta.FormatStatValue(st.MinBytes(), elem)
				max = parquetmeta.FormatStatValue(st.MaxBytes(), elem)
				if st.NullCount != nil {
					nulls = strconv.FormatInt(*st.NullCount, 10)
				}
			}

			table.Append([]string{
				strings.Join(md.PathInSchema, "."),
				md.Type.String(),
				md.Codec.String(),
				strconv.FormatInt(md.NumValues, 10),
				strconv.FormatInt(md.TotalCompressedSize, 10),
				strconv.FormatInt(md.TotalUncompressedSize, 10),
				min,
				max,
				nulls,
			})
		}
		table.Render()
	}

	return nil
}
