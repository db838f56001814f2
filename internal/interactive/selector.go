package interactive

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/rac-sri/runic/internal/abi"
	"github.com/rac-sri/runic/internal/domain"
)

// ErrNonInteractive is returned when a selection is required but prompts are
// disabled.
var ErrNonInteractive = fmt.Errorf("interactive selection not available in non-interactive mode")

// Selector prompts the user to pick deployments and functions.
type Selector struct {
	nonInteractive bool
}

func NewSelector(nonInteractive bool) *Selector {
	return &Selector{nonInteractive: nonInteractive}
}

// SelectDeployment picks one deployment from the visible list. Hidden proxy
// entries are filtered out before prompting.
func (s *Selector) SelectDeployment(deployments []*domain.Deployment, prompt string) (*domain.Deployment, error) {
	visible := lo.Filter(deployments, func(d *domain.Deployment, _ int) bool {
		return !d.Hidden()
	})
	if len(visible) == 0 {
		return nil, fmt.Errorf("no deployments to select from")
	}
	if len(visible) == 1 {
		return visible[0], nil
	}
	if s.nonInteractive {
		return nil, ErrNonInteractive
	}

	index, err := runSelect(prompt, formatDeploymentOptions(visible))
	if err != nil {
		return nil, err
	}
	return visible[index], nil
}

// SelectFunction picks one callable function from a deployment's interface.
func (s *Selector) SelectFunction(d *domain.Deployment, prompt string) (*abi.ContractFunction, error) {
	if len(d.Functions) == 0 {
		return nil, fmt.Errorf("%s exposes no callable functions", d.BaseName())
	}
	if len(d.Functions) == 1 {
		return &d.Functions[0], nil
	}
	if s.nonInteractive {
		return nil, ErrNonInteractive
	}

	index, err := runSelect(prompt, formatFunctionOptions(d.Functions))
	if err != nil {
		return nil, err
	}
	return &d.Functions[index], nil
}

// PromptArgument asks for one function argument value.
func (s *Selector) PromptArgument(param abi.FunctionParam) (string, error) {
	if s.nonInteractive {
		return "", ErrNonInteractive
	}

	label := param.Name
	if label == "" {
		label = "arg"
	}
	prompt := promptui.Prompt{
		Label: fmt.Sprintf("%s (%s)", label, param.Type.Raw),
	}
	value, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("input cancelled: %w", err)
	}
	return strings.TrimSpace(value), nil
}

func runSelect(label string, options []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	sel := promptui.Select{
		Label:             label,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          fuzzySearchFunc(options),
	}

	index, _, err := sel.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

func formatDeploymentOptions(deployments []*domain.Deployment) []string {
	options := make([]string, len(deployments))
	for i, d := range deployments {
		name := color.New(color.FgWhite, color.Bold).Sprint(d.Name)
		addr := color.New(color.FgBlue).Sprint(d.CallableAddress)
		network := color.New(color.FgYellow).Sprint(d.Network)
		if d.IsProxy {
			options[i] = fmt.Sprintf("%s %s (%s, proxied)", name, addr, network)
		} else {
			options[i] = fmt.Sprintf("%s %s (%s)", name, addr, network)
		}
	}
	return options
}

func formatFunctionOptions(functions []abi.ContractFunction) []string {
	options := make([]string, len(functions))
	for i, fn := range functions {
		sig := abi.Signature(fn)
		if fn.IsReadOnly() {
			options[i] = fmt.Sprintf("%s %s", sig, color.New(color.FgGreen).Sprint("[read]"))
		} else {
			options[i] = fmt.Sprintf("%s %s", sig, color.New(color.FgRed).Sprint("[write]"))
		}
	}
	return options
}

// fuzzySearchFunc combines substring and fuzzy matching for the prompt's
// search mode.
func fuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])
		if strings.Contains(item, input) {
			return true
		}
		return len(fuzzy.Find(input, []string{item})) > 0
	}
}
