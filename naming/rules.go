package naming

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// RuleFile declares custom inflection rules. It is the YAML shape
// accepted by LoadRules:
//
//	plurals:
//	  octopus: octopodes
//	uncountables:
//	  - equipment
//	acronyms:
//	  - GRPC
type RuleFile struct {
	// Plurals maps singular words to their irregular plural form.
	Plurals map[string]string `yaml:"plurals"`
	// Uncountables are words with identical singular and plural forms.
	Uncountables []string `yaml:"uncountables"`
	// Acronyms are preserved in upper case by Pascal.
	Acronyms []string `yaml:"acronyms"`
}

// Apply registers the rules on the package ruleset. It is intended for
// program initialization and is not safe to call concurrently with
// Key.Name, Pluralize or Singularize.
func (f RuleFile) Apply() {
	for singular, plural := range f.Plurals {
		rules.AddIrregular(singular, plural)
	}
	for _, w := range f.Uncountables {
		rules.AddUncountable(w)
	}
	for _, w := range f.Acronyms {
		rules.AddAcronym(w)
		acronyms[w] = struct{}{}
	}
}

// LoadRules reads a YAML rule file and applies it to the package
// ruleset.
func LoadRules(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("naming: read rules: %w", err)
	}
	var f RuleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("naming: parse rules: %w", err)
	}
	f.Apply()
	return nil
}

// LoadRulesFile reads and applies a YAML rule file from disk.
func LoadRulesFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("naming: open rules: %w", err)
	}
	defer f.Close()
	return LoadRules(f)
}
