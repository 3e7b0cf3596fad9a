package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/forPelevin/repurpose/internal/engine"
	"github.com/forPelevin/repurpose/internal/ports/adapters/jsonfile"
	"github.com/forPelevin/repurpose/internal/ports/adapters/lingua"
	"github.com/forPelevin/repurpose/internal/types"
)

func newHighlightsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlights <metadata.json>",
		Short: "Print the ranked highlights of one video",
		Args:  cobra.ExactArgs(1),
		RunE:  highlights,
	}
	cmd.Flags().Bool("json", false, "Print the highlight result as JSON")
	cmd.Flags().String("lang", "", "Keyword language (empty = detect)")
	return cmd
}

func highlights(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")
	lang, _ := cmd.Flags().GetString("lang")

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	v, err := jsonfile.New().Load(cmd.Context(), path)
	if err != nil {
		return err
	}
	if lang == "" {
		lang, _ = lingua.New().Detect(v.Transcript)
	}

	res := engine.New(cfg).Analyze(v, lang)
	out := cmd.OutOrStdout()
	if asJSON {
		b, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	}

	fmt.Fprintf(out, "%s (%s) language=%q highlights=%d\n", res.Title, res.VideoID, res.Language, res.Summary.TotalHighlights)
	fmt.Fprintln(out, highlightsTable(res.Highlights))
	return nil
}

// contentWidth keeps transcript sentences from stretching the table.
const contentWidth = 60

func highlightsTable(hs []types.RankedHighlight) string {
	rows := make([][]string, 0, len(hs))
	for i, h := range hs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			string(h.Source),
			seconds(h.Timestamp.Start.Seconds()),
			seconds(h.Timestamp.End.Seconds()),
			strconv.FormatFloat(h.Score, 'f', 2, 64),
			strconv.FormatFloat(h.WeightedScore, 'f', 3, 64),
			string(h.Confidence),
			h.Content,
		})
	}
	return renderTable(
		[]column{
			numCol("#"), col("Source"), numCol("Start"), numCol("End"),
			numCol("Score"), numCol("Weighted"), col("Confidence"), wrapCol("Content", contentWidth),
		},
		rows,
	)
}

func seconds(s float64) string { return strconv.FormatFloat(s, 'f', 1, 64) }
