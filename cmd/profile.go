package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSteer/internal/config"
	"github.com/Rorical/RoriSteer/internal/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage API profiles",
	Long: `Manage API profiles: the steering endpoint, model id and key, plus the
generation settings and feature strength a session starts with.`,
}

var listProfilesCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Active Profile: %s\n\n", cfg.ActiveProfile)
		fmt.Fprintln(out, "Available Profiles:")
		for _, name := range profileNames(cfg, "") {
			marker := ""
			if name == cfg.ActiveProfile {
				marker = " (active)"
			}
			profile := cfg.Profiles[name]
			fmt.Fprintf(out, "  %s%s\n", name, marker)
			fmt.Fprintf(out, "    Model ID: %s\n", profileModelID(profile))
			fmt.Fprintf(out, "    API Key: %s\n", yesNo(profile.APIKey != ""))
			fmt.Fprintln(out)
		}
	},
}

var showProfileCmd = &cobra.Command{
	Use:   "show [profile-name]",
	Short: "Show profile details and session defaults",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := cfg.ActiveProfile
		if len(args) > 0 {
			profileName = args[0]
		}
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		writeProfileDetails(cmd.OutOrStdout(), cfg, profileName, profile)
	},
}

var addProfileCmd = &cobra.Command{
	Use:   "add [profile-name]",
	Short: "Add a new profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		var profileName string
		if len(args) > 0 {
			profileName = args[0]
		} else {
			prompt := promptui.Prompt{
				Label:    "Profile name",
				Validate: notBlank,
			}
			var err error
			profileName, err = prompt.Run()
			if err != nil {
				log.Fatalf("Prompt failed: %v", err)
			}
		}

		if _, exists := cfg.Profiles[profileName]; exists {
			log.Fatalf("Profile '%s' already exists", profileName)
		}

		// New profiles start from the built-in endpoint and the config-wide defaults
		cfg.Profiles[profileName] = promptProfile(cfg, config.Profile{
			BaseURL: config.DefaultBaseURL,
			ModelID: config.DefaultModelID,
		})

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' added successfully!\n", profileName)
	},
}

var editProfileCmd = &cobra.Command{
	Use:   "edit [profile-name]",
	Short: "Edit an existing profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(cfg, args, "Select profile to edit", "")
		profile, exists := cfg.Profiles[profileName]
		if !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.Profiles[profileName] = promptProfile(cfg, profile)

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' updated successfully!\n", profileName)
	},
}

var deleteProfileCmd = &cobra.Command{
	Use:   "delete [profile-name]",
	Short: "Delete a profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		profileName := profileArg(cfg, args, "Select profile to delete", "")
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		// Confirm deletion
		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Delete profile '%s'", profileName),
			IsConfirm: true,
		}
		if _, err := confirmPrompt.Run(); err != nil {
			fmt.Println("Deletion cancelled")
			return
		}

		removeProfile(cfg, profileName)

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Profile '%s' deleted successfully!\n", profileName)
	},
}

var switchProfileCmd = &cobra.Command{
	Use:   "switch [profile-name]",
	Short: "Switch to a different profile",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := mustLoadConfig()

		if len(args) == 0 && len(profileNames(cfg, cfg.ActiveProfile)) == 0 {
			fmt.Println("No other profiles available to switch to")
			return
		}
		profileName := profileArg(cfg, args, "Select profile to switch to", cfg.ActiveProfile)
		if _, exists := cfg.Profiles[profileName]; !exists {
			log.Fatalf("Profile '%s' does not exist", profileName)
		}

		cfg.ActiveProfile = profileName

		// Save config
		if err := cfg.Save(); err != nil {
			log.Fatalf("Failed to save config: %v", err)
		}

		fmt.Printf("Switched to profile '%s'\n", profileName)
	},
}

func mustLoadConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// profileNames lists profile names in sorted order, leaving out skip.
func profileNames(cfg *config.Config, skip string) []string {
	names := make([]string, 0, len(cfg.Profiles))
	for name := range cfg.Profiles {
		if name != skip {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// profileArg takes the profile name from args, or lets the user pick one.
func profileArg(cfg *config.Config, args []string, label, skip string) string {
	if len(args) > 0 {
		return args[0]
	}

	names := profileNames(cfg, skip)
	if len(names) == 0 {
		log.Fatalf("No profiles available")
	}

	prompt := promptui.Select{
		Label: label,
		Items: names,
	}
	_, name, err := prompt.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	return name
}

// removeProfile deletes name, moving the active profile elsewhere and
// recreating a default profile if none would be left.
func removeProfile(cfg *config.Config, name string) {
	delete(cfg.Profiles, name)

	if len(cfg.Profiles) == 0 {
		cfg.Profiles["default"] = config.Profile{
			BaseURL: config.DefaultBaseURL,
			ModelID: config.DefaultModelID,
		}
	}
	if _, ok := cfg.Profiles[cfg.ActiveProfile]; !ok {
		cfg.ActiveProfile = profileNames(cfg, "")[0]
	}
}

// promptProfile walks through every profile field, defaulting to the current
// values in p.
func promptProfile(cfg *config.Config, p config.Profile) config.Profile {
	// Prompt for API Key
	p.APIKey = runPrompt(promptui.Prompt{
		Label:   "API Key",
		Default: p.APIKey,
		Mask:    '*',
	})

	p.ModelID = strings.TrimSpace(runPrompt(promptui.Prompt{
		Label:    "Model ID",
		Default:  profileModelID(p),
		Validate: notBlank,
	}))

	p.BaseURL = strings.TrimSpace(runPrompt(promptui.Prompt{
		Label:    "Base URL",
		Default:  profileBaseURL(p),
		Validate: validateBaseURL,
	}))

	// Starting strength for newly selected features
	strength, _ := strconv.Atoi(strings.TrimSpace(runPrompt(promptui.Prompt{
		Label:    fmt.Sprintf("Default strength (%d..%d)", models.MinStrength, models.MaxStrength),
		Default:  strconv.Itoa(cfg.StrengthFor(p)),
		Validate: validateStrength,
	})))
	p.DefaultStrength = &strength

	customize := promptui.Select{
		Label: "Customize generation settings",
		Items: []string{"No", "Yes"},
	}
	_, answer, err := customize.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	if answer == "Yes" {
		generation := promptGeneration(cfg.GenerationFor(p))
		p.Generation = &generation
	}

	return p
}

func promptGeneration(s models.GenerationSettings) models.GenerationSettings {
	s.Temperature, _ = strconv.ParseFloat(strings.TrimSpace(runPrompt(promptui.Prompt{
		Label:    "Temperature (0..1)",
		Default:  strconv.FormatFloat(s.Temperature, 'f', -1, 64),
		Validate: validateTemperature,
	})), 64)

	s.MaxTokens = promptInt("Max tokens", s.MaxTokens, validatePositive)
	s.FreqPenalty = promptInt("Frequency penalty", s.FreqPenalty, validateInt)
	s.Seed = promptInt("Seed", s.Seed, validateInt)
	s.StrengthMultiplier = promptInt("Strength multiplier", s.StrengthMultiplier, validateInt)

	steerSpecial := promptui.Select{
		Label:     "Steer special tokens",
		Items:     []string{"true", "false"},
		CursorPos: boolIndex(!s.SteerSpecialTokens),
	}
	_, value, err := steerSpecial.Run()
	if err != nil {
		log.Fatalf("Selection failed: %v", err)
	}
	s.SteerSpecialTokens = value == "true"

	return s.Normalize()
}

func promptInt(label string, current int, validate promptui.ValidateFunc) int {
	v, _ := strconv.Atoi(strings.TrimSpace(runPrompt(promptui.Prompt{
		Label:    label,
		Default:  strconv.Itoa(current),
		Validate: validate,
	})))
	return v
}

func runPrompt(prompt promptui.Prompt) string {
	value, err := prompt.Run()
	if err != nil {
		log.Fatalf("Prompt failed: %v", err)
	}
	return value
}

func writeProfileDetails(w io.Writer, cfg *config.Config, name string, p config.Profile) {
	fmt.Fprintf(w, "Profile: %s\n", name)
	fmt.Fprintf(w, "Model ID: %s\n", profileModelID(p))
	baseURL := p.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL + " (default)"
	}
	fmt.Fprintf(w, "Base URL: %s\n", baseURL)
	hasKey := "Not set"
	if p.APIKey != "" {
		hasKey = "Set (hidden for security)"
	}
	fmt.Fprintf(w, "API Key: %s\n", hasKey)

	fmt.Fprintf(w, "Default strength: %d%s\n", cfg.StrengthFor(p), overrideMark(p.DefaultStrength != nil))

	g := cfg.GenerationFor(p)
	fmt.Fprintf(w, "Generation%s:\n", overrideMark(p.Generation != nil))
	fmt.Fprintf(w, "  Temperature: %.2f\n", g.Temperature)
	fmt.Fprintf(w, "  Max tokens: %d\n", g.MaxTokens)
	fmt.Fprintf(w, "  Frequency penalty: %d\n", g.FreqPenalty)
	fmt.Fprintf(w, "  Seed: %d\n", g.Seed)
	fmt.Fprintf(w, "  Strength multiplier: %d\n", g.StrengthMultiplier)
	fmt.Fprintf(w, "  Steer special tokens: %t\n", g.SteerSpecialTokens)
}

func overrideMark(set bool) string {
	if set {
		return " (profile)"
	}
	return ""
}

func profileModelID(p config.Profile) string {
	if p.ModelID == "" {
		return config.DefaultModelID
	}
	return p.ModelID
}

func profileBaseURL(p config.Profile) string {
	if p.BaseURL == "" {
		return config.DefaultBaseURL
	}
	return p.BaseURL
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}

func notBlank(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

func validateBaseURL(input string) error {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

func validateInt(input string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(input)); err != nil {
		return errors.New("must be a whole number")
	}
	return nil
}

func validatePositive(input string) error {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func validateStrength(input string) error {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < models.MinStrength || v > models.MaxStrength {
		return fmt.Errorf("must be between %d and %d", models.MinStrength, models.MaxStrength)
	}
	return nil
}

func validateTemperature(input string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || v < 0 || v > 1 {
		return errors.New("must be between 0 and 1")
	}
	return nil
}

func init() {
	// Add subcommands to profile
	profileCmd.AddCommand(listProfilesCmd)
	profileCmd.AddCommand(showProfileCmd)
	profileCmd.AddCommand(addProfileCmd)
	profileCmd.AddCommand(editProfileCmd)
	profileCmd.AddCommand(deleteProfileCmd)
	profileCmd.AddCommand(switchProfileCmd)
}
