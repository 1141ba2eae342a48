package cmds

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	parquetmeta "github.com/fraugster/parquet-meta"
)

func init() {
	pageIndexCmd.Flags().Int64Var(&gapTolerance, "gap-tolerance", 0, "max gap in bytes bridged by one coalesced read (0 = default)")
	rootCmd.AddCommand(pageIndexCmd)
}

var gapTolerance int64

var pageIndexCmd = &cobra.Command{
	Use:   "pageindex file-name.parquet",
	Short: "Print the column and offset indexes of the parquet file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			_ = cmd.Usage()
			os.Exit(1)
		}

		if err := pageIndexFile(os.Stdout, args[0]); err != nil {
			log.Fatal(err)
		}
	},
}

func pageIndexFile(w io.Writer, address string) error {
	var opts []parquetmeta.ReaderOption
	if gapTolerance > 0 {
		opts = append(opts, parquetmeta.WithGapTolerance(gapTolerance))
	}

	reader, err := parquetmeta.OpenFile(address, opts...)
	if err != nil {
		return fmt.Errorf("failed to read the parquet footer: %w", err)
	}
	defer reader.Close()

	if err := reader.ReadPageIndexes(); err != nil {
		return fmt.Errorf("failed to read the page indexes: %w", err)
	}

	meta := reader.MetaData()
	for i, rowGroup := range reader.PageIndexes() {
		fmt.Fprintf(w, "Row group %d:\n", i)
		for j, idx := range rowGroup {
			md := meta.RowGroups[i].Columns[j].MetaData
			if md == nil || (idx.ColumnIndex == nil && idx.OffsetIndex == nil) {
				continue
			}

			elem := columnElement(reader, md.PathInSchema)
			fmt.Fprintf(w, "  Column %d (%s):\n", j, md.Type)

			table := tablewriter.NewWriter(w)
			table.SetHeader([]string{"Page", "Offset", "Size", "First row", "Min", "Max", "Null page", "Nulls"})

			pages := 0
			if idx.OffsetIndex != nil {
				pages = len(idx.OffsetIndex.PageLocations)
			}
			if idx.ColumnIndex != nil && idx.ColumnIndex.NumPages() > pages {
				pages = idx.ColumnIndex.NumPages()
			}

			for p := 0; p < pages; p++ {
				offset, size, firstRow := "-", "-", "-"
				if oi := idx.OffsetIndex; oi != nil && p < len(oi.PageLocations) {
					offset = strconv.FormatInt(oi.PageLocations[p].Offset, 10)
					size = strconv.Itoa(int(oi.PageLocations[p].CompressedPageSize))
					firstRow = strconv.FormatInt(oi.PageLocations[p].FirstRowIndex, 10)
				}

				min, max, nullPage, nulls := "-", "-", "-", "-"
				if ci := idx.ColumnIndex; ci != nil && p < ci.NumPages() {
					min = parquetmeta.FormatStatValue(ci.MinValues[p], elem)
					max = parquetmeta.FormatStatValue(ci.MaxValues[p], elem)
					nullPage = strconv.FormatBool(ci.NullPages[p])
					if p < len(ci.NullCounts) {
						nulls = strconv.FormatInt(ci.NullCounts[p], 10)
					}
				}

				table.Append([]string{strconv.Itoa(p), offset, size, firstRow, min, max, nullPage, nulls})
			}
			table.Render()

			if ci := idx.ColumnIndex; ci != nil {
				fmt.Fprintf(w, "  Boundary order: %s\n", ci.BoundaryOrder)
			}
		}
	}

	for _, warn := range reader.IndexWarnings() {
		fmt.Fprintf(w, "Warning: %s\n", warn.Error())
	}

	return nil
}
