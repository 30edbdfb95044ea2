package attribution

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Alias maps a lowercase alias string to a canonical name.
type Alias struct {
	Alias string `yaml:"alias"`
	Name  string `yaml:"name"`
}

// aliasTable is one curated alias file: an ordered list, first match wins.
type aliasTable struct {
	Aliases []Alias `yaml:"aliases"`
}

// DefaultAliases is the curated table of figures expected to be quoted in
// the corpus. Order matters: more specific aliases come before the generic
// ones that would shadow them ("nelson mandela" before "mandela" is not
// required since both map to the same name, but "pope john paul" must come
// before "pope paul").
func DefaultAliases() []Alias {
	return []Alias{
		{"nelson mandela", "Nelson Mandela"},
		{"mandela", "Nelson Mandela"},
		{"mahatma gandhi", "Mahatma Gandhi"},
		{"gandhi", "Mahatma Gandhi"},
		{"martin luther king", "Martin Luther King Jr."},
		{"mlk", "Martin Luther King Jr."},
		{"kennedy", "John F. Kennedy"},
		{"jfk", "John F. Kennedy"},
		{"churchill", "Winston Churchill"},
		{"einstein", "Albert Einstein"},
		{"pope francis", "Pope Francis"},
		{"pope john paul", "Pope John Paul II"},
		{"pope paul", "Pope Paul VI"},
		{"lincoln", "Abraham Lincoln"},
		{"eleanor roosevelt", "Eleanor Roosevelt"},
		{"roosevelt", "Franklin D. Roosevelt"},
		{"kofi annan", "Kofi Annan"},
		{"ban ki-moon", "Ban Ki-moon"},
		{"ban ki moon", "Ban Ki-moon"},
		{"guterres", "António Guterres"},
		{"dag hammarskjöld", "Dag Hammarskjöld"},
		{"hammarskjold", "Dag Hammarskjöld"},
		{"shakespeare", "William Shakespeare"},
		{"confucius", "Confucius"},
		{"buddha", "Buddha"},
		{"jesus", "Jesus Christ"},
		{"prophet muhammad", "Prophet Muhammad"},
		{"desmond tutu", "Desmond Tutu"},
		{"malala", "Malala Yousafzai"},
		{"greta thunberg", "Greta Thunberg"},
		{"secretary-general", "UN Secretary-General"},
		{"un charter", "UN Charter"},
		{"the charter", "UN Charter"},
	}
}

// LoadAliases reads a curated alias table from a YAML file of the form:
//
//	aliases:
//	  - alias: mandela
//	    name: Nelson Mandela
//
// The file fully replaces the default table.
func LoadAliases(path string) ([]Alias, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("attribution: failed to read alias table %s: %w", path, err)
	}

	var table aliasTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("attribution: failed to parse alias table %s: %w", path, err)
	}
	if len(table.Aliases) == 0 {
		return nil, fmt.Errorf("attribution: alias table %s has no entries", path)
	}

	for i, a := range table.Aliases {
		if a.Alias == "" || a.Name == "" {
			return nil, fmt.Errorf("attribution: alias table %s entry %d is incomplete", path, i)
		}
	}

	return table.Aliases, nil
}
