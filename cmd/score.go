package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/velora-app/matchengine/internal/ai"
	"github.com/velora-app/matchengine/internal/ai/gemini"
	"github.com/velora-app/matchengine/internal/logger"
	"github.com/velora-app/matchengine/internal/narrative"
	"github.com/velora-app/matchengine/internal/profile"
	"github.com/velora-app/matchengine/internal/scoring"
	"github.com/velora-app/matchengine/internal/secrets"
)

var scoreCmd = &cobra.Command{
	Use:   "score <user-id> <candidate-id>",
	Short: "Score one pair of profiles and print the verdict",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		score(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("profiles-file", "p", "", "profiles JSON file. Overrides the config value.")
	viper.BindPFlag("profiles-file", scoreCmd.Flags().Lookup("profiles-file"))
}

func score(cmd *cobra.Command, userID, candidateID string) {
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
	if config == nil || config.ProfilesFile == "" {
		zlog.Fatal("profiles file is required under profiles-file")
	}

	profiles, err := profile.FromFile(config.ProfilesFile)
	if err != nil {
		zlog.Fatal("loading profiles", zap.Error(err))
	}

	subject := profiles.FindByID(userID)
	if subject == nil {
		zlog.Fatal("user not found in profiles file", zap.String("user_id", userID))
	}
	candidate := profiles.FindByID(candidateID)
	if candidate == nil {
		zlog.Fatal("candidate not found in profiles file", zap.String("candidate_id", candidateID))
	}

	engine := scoring.New(zlog)
	result, err := engine.Score(subject, candidate)
	if err != nil {
		zlog.Fatal("scoring pair", zap.Error(err))
	}

	pretty, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(pretty))

	story := narrative.New().Generate(result, subject, candidate)
	prettyStory, _ := json.MarshalIndent(story, "", "  ")
	fmt.Println(string(prettyStory))

	if intro := composeIntro(ctx, config.AI, zlog, result, subject, candidate); intro != nil {
		fmt.Println(intro.Message)
	}
}

// composeIntro asks the configured AI writer for a polished introduction.
// Any failure only costs the polished text; the templated narrative above
// already covers presentation.
func composeIntro(ctx context.Context, cfg *AIConfig, zlog *zap.Logger, result *scoring.Result, a, b *profile.UserMatchProfile) *ai.Intro {
	writer, err := newAIWriter(ctx, cfg, zlog)
	if err != nil {
		zlog.Warn("skipping AI introduction", zap.Error(err))
		return nil
	}
	if writer == nil {
		return nil
	}

	intro, err := writer.Compose(ctx, result, a, b)
	if err != nil {
		zlog.Warn("composing AI introduction", zap.Error(err))
		return nil
	}
	return intro
}

func newAIWriter(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) (ai.Writer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	writerLogger := logger.WithFields(zlog, logger.StringFields(
		logger.StringField{Key: logger.FieldProvider, Value: "gemini"},
		logger.StringField{Key: logger.FieldModel, Value: generator.Model()},
	)...)

	return gemini.NewWriter(generator, cfg.Gemini.MaxRetries, cfg.Gemini.MaxLogLength, writerLogger), nil
}
