package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dateguard/catfish/internal/analyze"
	"github.com/dateguard/catfish/internal/config"
	"github.com/dateguard/catfish/internal/schema"
)

var (
	analyzeKind    string
	analyzeFormat  string
	analyzeConfig  string
	analyzeTimeout time.Duration
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyze a single piece of evidence",
	Long: `Analyze runs one file through the analysis pipeline without starting
the API server. The evidence kind is inferred from the file extension
unless --kind is given: .txt/.md are text, .jpg/.png/.webp/.gif are
images, and common audio extensions are audio.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeKind, "kind", "", "Evidence kind: text, image, or audio")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "Output format: text or json")
	analyzeCmd.Flags().StringVar(&analyzeConfig, "config", os.Getenv("CATFISH_CONFIG"), "Path to YAML config file")
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 2*time.Minute, "Overall analysis timeout")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]

	kind, err := resolveKind(path, analyzeKind)
	if err != nil {
		return err
	}
	if analyzeFormat != "text" && analyzeFormat != "json" {
		return fmt.Errorf("unknown format %q", analyzeFormat)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	cfg, err := config.Load(analyzeConfig)
	if err != nil {
		return err
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd())
	if !interactive {
		color.NoColor = true
	}

	analyzer := analyze.New(cfg, zap.NewNop())
	if analyzer.Mode() == analyze.ModeMock && interactive {
		color.Yellow("OPENAI_API_KEY not set, returning demo results")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), analyzeTimeout)
	defer cancel()

	var spin *spinner.Spinner
	if interactive && analyzeFormat == "text" {
		spin = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		spin.Suffix = fmt.Sprintf(" analyzing %s...", filepath.Base(path))
		spin.Start()
	}

	var result any
	switch kind {
	case schema.KindText:
		result, err = analyzer.AnalyzeText(ctx, string(data), "")
	case schema.KindImage:
		result, err = analyzer.AnalyzeImage(ctx, data)
	case schema.KindAudio:
		result, err = analyzer.AnalyzeAudio(ctx, data, "", "", "")
	}

	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if analyzeFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	switch res := result.(type) {
	case *schema.TextAnalysis:
		printTextResult(res)
	case *schema.ImageAnalysis:
		printImageResult(res)
	case *schema.AudioAnalysis:
		printAudioResult(res)
	}
	return nil
}

// resolveKind picks the evidence kind from the flag, falling back to the
// file extension.
func resolveKind(path, flag string) (schema.Kind, error) {
	switch flag {
	case "text":
		return schema.KindText, nil
	case "image":
		return schema.KindImage, nil
	case "audio":
		return schema.KindAudio, nil
	case "":
	default:
		return "", fmt.Errorf("unknown kind %q", flag)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text":
		return schema.KindText, nil
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return schema.KindImage, nil
	case ".mp3", ".wav", ".m4a", ".ogg", ".webm", ".flac", ".aac":
		return schema.KindAudio, nil
	}
	return "", fmt.Errorf("cannot infer evidence kind from %q, pass --kind", filepath.Base(path))
}

func printTextResult(res *schema.TextAnalysis) {
	fmt.Printf("Risk score: %s   AI score: %d\n", scoreColor(res.RiskScore), res.AIScore)
	fmt.Printf("Category:   %s\n", categoryColor(res.Category))
	printFlags(res.Flags)
	fmt.Printf("\n%s\n", res.Explanation)
	fmt.Printf("\nRecommended: %s\n", res.RecommendedAction)
	if res.SuggestedReply != "" {
		fmt.Printf("Suggested reply: %s\n", res.SuggestedReply)
	}
}

func printImageResult(res *schema.ImageAnalysis) {
	fmt.Printf("Catfish score: %s   AI-generated score: %d\n", scoreColor(res.CatfishScore), res.AIGeneratedScore)
	fmt.Printf("Confidence:    %s\n", bandColor(res.ConfidenceBand))
	printFlags(res.Flags)

	if len(res.TopSignals) > 0 {
		fmt.Println("\nSignals:")
		for _, sig := range res.TopSignals {
			fmt.Printf("  [%s] %s: %s\n", sig.Severity, sig.Category, sig.Description)
		}
	}

	if res.Classifier.Available {
		if res.Classifier.Verdict != nil {
			fmt.Printf("\nML classifier: verdict=%s", *res.Classifier.Verdict)
			if res.Classifier.AIConfidence != nil {
				fmt.Printf(" confidence=%.2f", *res.Classifier.AIConfidence)
			}
			fmt.Println()
		} else if res.Classifier.Error != nil {
			color.Yellow("\nML classifier unavailable: %s", *res.Classifier.Error)
		}
	}

	fmt.Printf("\n%s\n", res.Explanation)
	fmt.Printf("\nRecommended: %s\n", res.RecommendedAction)
	if len(res.ReverseSearchSteps) > 0 {
		fmt.Println("Reverse search:")
		for _, step := range res.ReverseSearchSteps {
			fmt.Printf("  - %s\n", step)
		}
	}
}

func printAudioResult(res *schema.AudioAnalysis) {
	fmt.Printf("Risk score: %s   AI voice score: %d\n", scoreColor(res.RiskScore), res.AIVoiceScore)
	fmt.Printf("Category:   %s\n", categoryColor(res.Category))
	printFlags(res.Flags)
	if res.Transcript != "" {
		fmt.Printf("\nTranscript:\n%s\n", res.Transcript)
	}
	fmt.Printf("\n%s\n", res.Explanation)
	if res.AIVoiceRationale != "" {
		fmt.Printf("Voice assessment: %s\n", res.AIVoiceRationale)
	}
	fmt.Printf("\nRecommended: %s\n", res.RecommendedAction)
}

func printFlags(flags []string) {
	if len(flags) == 0 {
		return
	}
	fmt.Printf("Flags:      %s\n", strings.Join(flags, ", "))
}

func scoreColor(score int) string {
	s := fmt.Sprintf("%d", score)
	switch {
	case score >= 70:
		return color.RedString(s)
	case score >= 40:
		return color.YellowString(s)
	default:
		return color.GreenString(s)
	}
}

func categoryColor(category string) string {
	switch category {
	case schema.CategoryScamLikely:
		return color.RedString(category)
	case schema.CategorySuspicious:
		return color.YellowString(category)
	default:
		return color.GreenString(category)
	}
}

func bandColor(band string) string {
	switch band {
	case schema.BandStrongAIIndicators, schema.BandLikelyAI:
		return color.RedString(band)
	case schema.BandUncertain:
		return color.YellowString(band)
	default:
		return color.GreenString(band)
	}
}
