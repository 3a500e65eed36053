package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Config holds process settings. Flags win over environment variables, which
// win over the defaults.
type Config struct {
	Addr         string
	AllowOrigins string
	LogLevel     zerolog.Level
	LogPretty    bool
	AIStrength   string
	// AIMaxStrength caps requested difficulty, bounding search time by depth.
	AIMaxStrength string
}

func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("addr", getenv("CHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("CHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	level := fs.String("log-level", getenv("CHESS_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	pretty := fs.Bool("log-pretty", getenvBool("CHESS_LOG_PRETTY", false), "human readable console logs")
	strength := fs.String("ai-strength", getenv("CHESS_AI_STRENGTH", "MEDIUM"), "default AI difficulty (EASY, MEDIUM, HARD)")
	maxStrength := fs.String("ai-max-strength", getenv("CHESS_AI_MAX_STRENGTH", "HARD"), "strongest difficulty clients may request")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(*level))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", *level, err)
	}

	return Config{
		Addr:          *addr,
		AllowOrigins:  *origins,
		LogLevel:      lvl,
		LogPretty:     *pretty,
		AIStrength:    strings.ToUpper(*strength),
		AIMaxStrength: strings.ToUpper(*maxStrength),
	}, nil
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
