package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/velora-app/matchengine/internal/logger"
	"github.com/velora-app/matchengine/internal/pool"
	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/scoring"
	"github.com/velora-app/matchengine/internal/store"
)

const (
	PromptYes           = "Yes"
	PromptNo            = "No"
	PromptReport        = "Report by recommendation"
	PromptMatchesToFile = "Dump match records to file"
)

var errExit = errors.New("exit requested")

var matchPrompt = promptui.Select{
	Label: "Save these matches?",
	Items: []string{PromptYes, PromptNo, PromptReport, PromptMatchesToFile},
}

var matchCmd = &cobra.Command{
	Use:   "match <user-id>",
	Short: "Score a user against the candidate pool and save the matches",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		match(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	matchCmd.Flags().BoolP("auto-aprove", "y", false, "do not ask for confirmation before saving matches")
	matchCmd.Flags().IntP("min-score", "m", 0, "drop matches below this overall score")
}

// match is the main command for the cli.
func match(cmd *cobra.Command, userID string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the matchengine", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		zlog.Fatal("config is required")
	}
	if config.ProfilesFile == "" {
		zlog.Fatal("profiles file is required under profiles-file")
	}

	profiles, err := profile.FromFile(config.ProfilesFile)
	if err != nil {
		zlog.Fatal("loading profiles", zap.Error(err))
	}

	zlog.Info("loading profiles", zap.Int("count", profiles.Len()))

	subject := profiles.FindByID(userID)
	if subject == nil {
		zlog.Fatal("user with given id not found",
			zap.Any("existing profile ids", profiles.IDs()),
			zap.String("user_id", userID),
		)
	}

	source := &pool.FileSource{Path: config.ProfilesFile}
	candidates, err := source.Candidates(ctx, subject)
	if err != nil {
		zlog.Fatal("getting candidates", zap.Error(err))
	}

	if candidates.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	eligible, _ := pool.FilterEligible(subject, candidates, zlog)
	if eligible.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no candidates left after eligibility filter"))
		return
	}

	engine := scoring.New(zlog)
	records, err := pool.ScoreAll(ctx, engine, subject, eligible)
	if err != nil {
		zlog.Fatal("scoring candidates", zap.Error(err))
	}

	if minScore, _ := cmd.Flags().GetInt("min-score"); minScore > 0 {
		records = aboveScore(records, minScore)
		zlog.Info("applied minimum score", zap.Int("min_score", minScore), zap.Int("left", records.Len()))
	}

	if records.Len() == 0 {
		zlog.Info("exiting", zap.String("reason", "no matches above minimum score"))
		return
	}

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-aprove").Value.String() == "false" {
			_, action, err = matchPrompt.Run()
			if err != nil {
				zlog.Fatal("exiting", zap.Error(err))
			}
		}

		zlog.Info("current list of matches", zap.Int("count", records.Len()))

		if err := handleAction(action, zlog, config, records); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			zlog.Fatal("exiting", zap.Error(err))
		}

		if action == PromptYes {
			return
		}
	}
}

func handleAction(action string, zlog *zap.Logger, config *Config, records *store.MatchRecords) error {
	switch action {
	case PromptYes:
		return saveMatches(zlog, config, records)
	case PromptNo:
		zlog.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReport:
		pretty, _ := json.MarshalIndent(reportByRecommendation(records), "", "  ")
		zlog.Info(string(pretty), zap.Int("matches count", records.Len()))
		return nil
	case PromptMatchesToFile:
		filename, err := records.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump match records to file: %w", err)
		}
		zlog.Info("dumping match records to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func saveMatches(zlog *zap.Logger, config *Config, records *store.MatchRecords) error {
	if config.MatchesFile == "" {
		return errors.New("matches file is required under matches-file to save matches")
	}

	existing, err := store.FromFile(config.MatchesFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load existing match records: %w", err)
		}
		existing = &store.MatchRecords{}
	}

	existing.Append(records)

	if err := existing.ToFile(config.MatchesFile); err != nil {
		return fmt.Errorf("write match records: %w", err)
	}

	zlog.Info("successfully saved matches",
		zap.Int("count", records.Len()),
		zap.String("filename", config.MatchesFile),
	)
	return nil
}

func aboveScore(records *store.MatchRecords, minScore int) *store.MatchRecords {
	kept := &store.MatchRecords{}
	for _, record := range records.Items {
		if record.Result != nil && record.Result.OverallScore >= minScore {
			kept.Items = append(kept.Items, record)
		}
	}
	return kept
}

func reportByRecommendation(records *store.MatchRecords) map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, record := range records.Items {
		if record.Result == nil {
			continue
		}
		key := record.Result.Recommendation
		report[key] = append(report[key], map[string]string{
			"candidate_id": record.CandidateID,
			"score":        fmt.Sprintf("%d", record.Result.OverallScore),
			"top_reasons":  fmt.Sprintf("%v", record.Result.TopReasons),
		})
	}
	return report
}
