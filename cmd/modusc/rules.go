package main

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/mayhemheroes/modus/pkg/imagegen"
	"github.com/mayhemheroes/modus/pkg/logic"
)

// roleByName mirrors imagegen's Role vocabulary by the names a
// rules.json file spells them with, so the file stays readable without
// exposing imagegen.Role's int encoding to the outside world.
var roleByName = map[string]imagegen.Role{
	"from":            imagegen.RoleFrom,
	"run":             imagegen.RoleRun,
	"copy_from_local": imagegen.RoleCopyFromLocal,
	"copy_from_image": imagegen.RoleCopyFromImage,
	"set_workdir":     imagegen.RoleSetWorkdir,
	"set_entrypoint":  imagegen.RoleSetEntrypoint,
	"set_label":       imagegen.RoleSetLabel,
}

// ruleEntryJSON is one entry of a rules.json file: a predicate name,
// its arity, and the Role it plays.
type ruleEntryJSON struct {
	Predicate string `json:"predicate"`
	Arity     int    `json:"arity"`
	Role      string `json:"role"`
}

// loadImageRules reads a rules.json file into an imagegen.ImageRules.
// An empty path falls back to imagegen.DefaultImageRules, the
// conventional from/run/copy/copy_from/workdir/entrypoint/label names.
func loadImageRules(path string) (imagegen.ImageRules, error) {
	if path == "" {
		return imagegen.DefaultImageRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return imagegen.ImageRules{}, errors.Wrapf(err, "modusc: failed to read rules %s", path)
	}
	var entries []ruleEntryJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return imagegen.ImageRules{}, errors.Wrapf(err, "modusc: failed to parse rules %s", path)
	}
	rules := make(map[logic.Signature]imagegen.ImageRule, len(entries))
	for _, e := range entries {
		role, ok := roleByName[e.Role]
		if !ok {
			return imagegen.ImageRules{}, errors.Errorf("modusc: rules %s: unknown role %q", path, e.Role)
		}
		rules[logic.Signature{Name: logic.Predicate(e.Predicate), Arity: e.Arity}] = imagegen.ImageRule{Role: role}
	}
	return imagegen.NewImageRules(rules), nil
}
