package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mudler/xlog"

	"github.com/handwave/handwave/core/executor"
	"github.com/handwave/handwave/core/generator"
	"github.com/handwave/handwave/core/registry"
	"github.com/handwave/handwave/core/scheduler"
	"github.com/handwave/handwave/pkg/llm"
	"github.com/handwave/handwave/services/keymap"
	"github.com/handwave/handwave/webui"
)

type config struct {
	model    string
	apiURL   string
	apiKey   string
	timeout  string
	stateDir string
	address  string
}

// loadConfig reads every HANDWAVE_* variable from the environment. Call it
// only after godotenv.Load, so values coming from a .env file are visible
// to every field, not just some of them.
func loadConfig() (config, error) {
	c := config{
		model:    os.Getenv("HANDWAVE_MODEL"),
		apiURL:   os.Getenv("HANDWAVE_LLM_API_URL"),
		apiKey:   os.Getenv("HANDWAVE_LLM_API_KEY"),
		timeout:  os.Getenv("HANDWAVE_TIMEOUT"),
		stateDir: os.Getenv("HANDWAVE_STATE_DIR"),
		address:  os.Getenv("HANDWAVE_ADDRESS"),
	}

	if c.model == "" {
		return config{}, fmt.Errorf("HANDWAVE_MODEL not set")
	}
	if c.timeout == "" {
		c.timeout = "2m"
	}
	if c.address == "" {
		c.address = "127.0.0.1:8765"
	}
	if c.stateDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return config{}, err
		}
		c.stateDir = filepath.Join(cwd, "state")
	}

	return c, nil
}

func main() {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(cfg.stateDir, 0755); err != nil {
		panic(err)
	}

	reg := registry.New(filepath.Join(cfg.stateDir, "custom_actions.json"))
	exec := executor.New(reg)
	gen := generator.New(llm.NewClient(cfg.apiKey, cfg.apiURL, cfg.timeout), cfg.model)
	dispatcher := keymap.NewDispatcher(exec)

	store, err := scheduler.NewJSONStore(filepath.Join(cfg.stateDir, "schedules.json"))
	if err != nil {
		panic(err)
	}
	sched := scheduler.NewScheduler(store, exec, time.Second)
	sched.Start()
	defer sched.Stop()

	app := webui.NewApp(
		webui.WithRegistry(reg),
		webui.WithGenerator(gen),
		webui.WithExecutor(exec),
		webui.WithDispatcher(dispatcher),
		webui.WithScheduler(sched),
	)

	xlog.Info("Starting gesture control backend", "address", cfg.address, "state_dir", cfg.stateDir)
	log.Fatal(app.Listen(cfg.address))
}
