package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to PyData Academy! Let's configure the shell server.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port to listen on",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port input: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 2. Public URL.
	publicPrompt := promptui.Prompt{
		Label: "Public URL (empty for localhost)",
		Validate: func(s string) error {
			if s == "" {
				return nil
			}
			u, err := url.Parse(s)
			if err != nil || u.Host == "" {
				return fmt.Errorf("enter an absolute URL such as https://academy.example.org")
			}
			return nil
		},
	}
	cfg.PublicURL, err = publicPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("public URL input: %w", err)
	}

	// 3. CORS.
	corsPrompt := promptui.Select{
		Label: "Cross-origin API access",
		Items: []string{
			"localhost only",
			"any origin (development)",
		},
	}
	corsIdx, _, err := corsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("CORS selection: %w", err)
	}
	cfg.AllowAllOrigins = corsIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
