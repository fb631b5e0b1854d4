package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pable/go-rugby-metrics/internal/aggregator"
	"github.com/pable/go-rugby-metrics/internal/filter"
	"github.com/pable/go-rugby-metrics/internal/team"
	"github.com/pable/go-rugby-metrics/pkg/logger"
)

const analyzeSystemPrompt = `You are a rugby union performance analyst. You are given chart data
aggregated from tagged match events and a question from a coach.

Rules:
- Answer ONLY from the data provided. Never invent or estimate statistics.
- Always cite specific numbers when making a claim.
- If the data is insufficient to answer confidently, say so explicitly.
- Be concise and actionable: focus on what the team can work on in training.
- Mention the active filters when they change the meaning of a number.

Data glossary:
- Each dataset has labels (the x axis) and series of values aligned with them.
- "Our Team" / "Opponent" series split counts by side; team names are in match_info.
- Time buckets are 20-minute windows: 0'- 20', 20' - 40', 40' - 60', 60' - 80' and +80'.
- Tackle effectiveness %: completed tackles / (completed + missed) per side.
- Points: try 5, conversion 2, penalty goal 3, drop goal 3 unless the event says otherwise.
- Set piece: lineouts and scrums won or lost on own throw/feed as tagged.`

var (
	analyzeModel  string
	analyzeAPIKey string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <hash-prefix> <question>",
	Short: "AI-powered grounded analysis of a match (requires ANTHROPIC_API_KEY)",
	Long: `Builds the chart datasets of a stored match (after --filter) and asks an
Anthropic model the question, streaming the answer.

Example:
  rugbymetrics analyze 3fa2 "Where do we concede penalties?" --filter TEAM=OUR_TEAM`,
	Args: cobra.ExactArgs(2),
	RunE: runAnalyze,
}

func init() {
	addMatchFlags(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Anthropic model to use (default from config)")
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	set, err := activeFilters()
	if err != nil {
		return err
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := loadMatch(db, args[0])
	if err != nil {
		return err
	}
	contextJSON, err := buildMatchContext(m, set)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}

	modelID := analyzeModel
	if modelID == "" {
		modelID = cfg.AnalyzeModel
	}
	logger.Named("analyze").Debug("sending match context",
		zap.String("model", modelID), zap.Int("bytes", len(contextJSON)))
	return callAnthropic(cmd.Context(), analyzeAPIKey, modelID, contextJSON, args[1])
}

// buildMatchContext serialises the filtered chart datasets into compact JSON.
// Per-side series are renamed to the team names when match info has them.
func buildMatchContext(m *matchView, set filter.Set) (string, error) {
	filtered := filter.Apply(m.Events, set, m.Ctx)
	datasets := aggregator.All(filtered, m.Ctx)
	for i := range datasets {
		for j := range datasets[i].Series {
			datasets[i].Series[j].Name = team.Label(datasets[i].Series[j].Name, &m.Info)
		}
	}

	doc := map[string]interface{}{
		"subject":        "match",
		"match_info":     m.Info,
		"our_teams":      m.Ctx.OurTeams,
		"filters":        set.String(),
		"events_total":   len(m.Events),
		"events_matched": len(filtered),
		"datasets":       datasets,
	}
	b, err := json.Marshal(doc)
	return string(b), err
}

// callAnthropic streams a response from the Anthropic API and prints it to stdout.
func callAnthropic(ctx context.Context, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("DATA:\n%s\n\nQUESTION: %s", dataJSON, question)

	fmt.Fprintln(os.Stdout, "\n─── AI Analysis ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: analyzeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(os.Stdout, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(os.Stdout, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed: check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
