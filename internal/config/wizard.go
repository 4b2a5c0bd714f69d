package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to alphalabs! Let's configure your site.")
	fmt.Println()

	def := DefaultConfig()

	// 1. Content source.
	sourcePrompt := promptui.Select{
		Label: "Select the catalogue content",
		Items: []string{
			"built-in  (AlphaLabs classical mechanics catalogue)",
			"directory (site.yaml, collection.yaml, about.yaml)",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content selection: %w", err)
	}
	contentDir := ""
	if sourceIdx == 1 {
		contentPrompt := promptui.Prompt{
			Label:    "Content directory",
			Default:  "content",
			Validate: requireDir,
		}
		if contentDir, err = contentPrompt.Run(); err != nil {
			return nil, fmt.Errorf("content dir: %w", err)
		}
	}

	// 2. Assets.
	assetPrompt := promptui.Prompt{
		Label:   "Directory with simulation images",
		Default: def.AssetDir,
	}
	assetDir, err := assetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("asset dir: %w", err)
	}
	if _, err := os.Stat(assetDir); os.IsNotExist(err) {
		fmt.Printf("Note: %s does not exist yet; builds fail until the images are there.\n", assetDir)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the static export",
		Default: def.OutputDir,
	}
	outputDir, err := outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Base path.
	basePrompt := promptui.Prompt{
		Label:    "Base path the site is hosted under (blank for domain root)",
		Default:  def.BasePath,
		Validate: ValidateBasePath,
	}
	basePath, err := basePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("base path: %w", err)
	}

	// 5. Dev server port.
	portPrompt := promptui.Prompt{
		Label:    "Development server port",
		Default:  strconv.Itoa(def.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra asset exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := append([]string(nil), DefaultExcludes...)
	exclude = append(exclude, splitAndTrim(excludeStr)...)

	cfg := def
	cfg.ContentDir = contentDir
	cfg.AssetDir = assetDir
	cfg.OutputDir = outputDir
	cfg.BasePath = basePath
	cfg.Port = port
	cfg.Exclude = exclude

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func requireDir(s string) error {
	info, err := os.Stat(s)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s)
	}
	return nil
}

func validatePort(s string) error {
	p, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not a number")
	}
	if p < 1 || p > 65535 {
		return fmt.Errorf("must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
