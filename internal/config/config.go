package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// Canvas
	CanvasMargin      = 20 // per side, so the square is min(w, h) - 40
	DefaultWindowSide = 720

	// Physics
	Gravity            = 0.7
	HorizontalFriction = 0.5
	VerticalFriction   = 0.8
	BallRadius         = 7
	PegRadius          = 4

	// Peg lattice
	PegFirstRow = 2
	PegRows     = 16
	PegPitch    = 36
	RowSpacing  = 35

	// Sink row
	SinkCount   = 15
	SinkSize    = 30
	SinkRowY    = 0.85
	SinkCorner  = 7
	ShadowShift = 3
	ShadowBoost = 1.0

	// Spawn
	SpawnY      = 50
	SpawnJitter = 23

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 40

	// Loop
	TicksPerSecond = 60
)

// Palette stops for the sink ramp and the fixed entity colors.
const (
	SinkStopA = "#b7183c"
	SinkStopB = "#cda43a"
	BallColor = "#ffff00"
	PegColor  = "#ffffff"
)

// Settings are the runtime knobs read from the environment. Physics stays
// in the constants above.
type Settings struct {
	Environment string

	WindowSide  int
	Sound       bool
	ClickSample string // optional wav, mp3 or flac used for peg hits
	Debug       bool
	Seed        int64

	// Spectator server
	Addr        string
	CanvasSide  int
	BroadcastHz int
	Origins     []string // CORS origins; empty allows any

	// Terminal host writes its log here while the screen is active
	LogFile string
}

// Load reads settings from the environment, picking up a .env file when
// one is present.
func Load() *Settings {
	_ = godotenv.Load()

	return &Settings{
		Environment: getEnv("APP_ENV", "development"),

		WindowSide:  getEnvInt("PLINKO_WINDOW", DefaultWindowSide),
		Sound:       getEnvBool("PLINKO_SOUND", true),
		ClickSample: getEnv("PLINKO_CLICK_SAMPLE", ""),
		Debug:       getEnvBool("PLINKO_DEBUG", false),
		Seed:        int64(getEnvInt("PLINKO_SEED", 0)),

		Addr:        getEnv("PLINKO_ADDR", ":8080"),
		CanvasSide:  getEnvInt("PLINKO_CANVAS", DefaultWindowSide),
		BroadcastHz: getEnvInt("PLINKO_BROADCAST_HZ", 30),
		Origins:     getEnvList("PLINKO_ORIGINS"),

		LogFile: getEnv("PLINKO_LOG", "plinko-tui.log"),
	}
}

// IsProduction reports whether APP_ENV selects production behaviour.
func (s *Settings) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
