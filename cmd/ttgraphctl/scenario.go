// Copyright 2024 TTGraph Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arch-of-shadow/TTGraph"
)

// Scenario is a declarative replay script: a sequence of steps, each
// compiled into exactly one Transaction and committed in order. Node ids
// are scenario-local strings, resolved to real handles as they're
// allocated; they never appear in the committed graph itself.
type Scenario struct {
	Steps []Step `yaml:"steps"`
}

type Step struct {
	Inserts      []InsertSpec   `yaml:"inserts"`
	Mutates      []MutateSpec   `yaml:"mutates"`
	Removes      []string       `yaml:"removes"`
	Redirects    []RedirectSpec `yaml:"redirects"`
	RedirectAlls []RedirectSpec `yaml:"redirectAlls"`
}

type InsertSpec struct {
	ID      string              `yaml:"id"`
	Kind    string              `yaml:"kind"`
	Groups  []string            `yaml:"groups"`
	Scalars map[string]string   `yaml:"scalars"`
	Sets    map[string][]string `yaml:"sets"`
	Mirrors map[string]string   `yaml:"mirrors"`
}

type MutateSpec struct {
	ID            string              `yaml:"id"`
	SetScalars    map[string]string   `yaml:"setScalars"`
	AddToSet      map[string][]string `yaml:"addToSet"`
	RemoveFromSet map[string][]string `yaml:"removeFromSet"`
}

type RedirectSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

func loadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	var scn Scenario
	if err := yaml.Unmarshal(data, &scn); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	return &scn, nil
}

// symbolTable resolves scenario-local ids to handles, persisting across
// steps so a later step can redirect, mutate, or remove a node an earlier
// step inserted.
type symbolTable map[string]ttgraph.Handle

func (s symbolTable) resolve(id string) (ttgraph.Handle, error) {
	if id == "" {
		return ttgraph.Empty, nil
	}
	h, ok := s[id]
	if !ok {
		return ttgraph.Empty, fmt.Errorf("unknown node id %q", id)
	}
	return h, nil
}

// replay compiles and commits every step of scn against g in order.
func replay(scn *Scenario, ctx ttgraph.Context, g *ttgraph.Graph[FieldTag, FieldTag, AnyNode]) error {
	symbols := make(symbolTable)

	for i, step := range scn.Steps {
		txn := ttgraph.NewTransaction[FieldTag, FieldTag, AnyNode](ctx)

		// Reserve a handle for every insert up front so inserts within the
		// same step can reference each other regardless of order, applying
		// the alloc+fill-back pattern uniformly here rather than only for
		// genuine cycles.
		for _, ins := range step.Inserts {
			symbols[ins.ID] = txn.Alloc()
		}

		for _, ins := range step.Inserts {
			rec, err := buildRecord(ins, symbols)
			if err != nil {
				return fmt.Errorf("step %d insert %q: %w", i, ins.ID, err)
			}
			txn.FillBack(symbols[ins.ID], rec)
		}

		for _, mut := range step.Mutates {
			h, err := symbols.resolve(mut.ID)
			if err != nil {
				return fmt.Errorf("step %d mutate: %w", i, err)
			}
			setScalars, err := resolveStringMap(mut.SetScalars, symbols)
			if err != nil {
				return fmt.Errorf("step %d mutate %q: %w", i, mut.ID, err)
			}
			addToSet, err := resolveStringSliceMap(mut.AddToSet, symbols)
			if err != nil {
				return fmt.Errorf("step %d mutate %q: %w", i, mut.ID, err)
			}
			removeFromSet, err := resolveStringSliceMap(mut.RemoveFromSet, symbols)
			if err != nil {
				return fmt.Errorf("step %d mutate %q: %w", i, mut.ID, err)
			}
			txn.Mutate(h, func(n AnyNode) {
				r := n.(*Record)
				for f, target := range setScalars {
					r.Scalars[f] = target
				}
				for f, targets := range addToSet {
					r.IsSet[f] = true
					r.Sets[f] = append(r.Sets[f], targets...)
				}
				for f, targets := range removeFromSet {
					for _, target := range targets {
						kept := r.Sets[f][:0]
						for _, h := range r.Sets[f] {
							if h != target {
								kept = append(kept, h)
							}
						}
						r.Sets[f] = kept
					}
				}
			})
		}

		for _, id := range step.Removes {
			h, err := symbols.resolve(id)
			if err != nil {
				return fmt.Errorf("step %d remove: %w", i, err)
			}
			txn.Remove(h)
		}
		for _, rd := range step.Redirects {
			from, to, err := resolvePair(rd, symbols)
			if err != nil {
				return fmt.Errorf("step %d redirect: %w", i, err)
			}
			txn.Redirect(from, to)
		}
		for _, rd := range step.RedirectAlls {
			from, to, err := resolvePair(rd, symbols)
			if err != nil {
				return fmt.Errorf("step %d redirectAll: %w", i, err)
			}
			txn.RedirectAll(from, to)
		}

		g.Commit(txn)
	}
	return nil
}

func buildRecord(ins InsertSpec, symbols symbolTable) (*Record, error) {
	rec := newRecord(ins.Kind)
	rec.Groups = ins.Groups

	for f, target := range ins.Scalars {
		h, err := symbols.resolve(target)
		if err != nil {
			return nil, err
		}
		rec.Scalars[FieldTag(f)] = h
	}
	for f, targets := range ins.Sets {
		rec.IsSet[FieldTag(f)] = true
		for _, target := range targets {
			h, err := symbols.resolve(target)
			if err != nil {
				return nil, err
			}
			rec.Sets[FieldTag(f)] = append(rec.Sets[FieldTag(f)], h)
		}
	}
	for f, m := range ins.Mirrors {
		rec.Mirrors[FieldTag(f)] = FieldTag(m)
	}
	return rec, nil
}

func resolveStringMap(in map[string]string, symbols symbolTable) (map[FieldTag]ttgraph.Handle, error) {
	out := make(map[FieldTag]ttgraph.Handle, len(in))
	for f, target := range in {
		h, err := symbols.resolve(target)
		if err != nil {
			return nil, err
		}
		out[FieldTag(f)] = h
	}
	return out, nil
}

func resolveStringSliceMap(in map[string][]string, symbols symbolTable) (map[FieldTag][]ttgraph.Handle, error) {
	out := make(map[FieldTag][]ttgraph.Handle, len(in))
	for f, targets := range in {
		hs := make([]ttgraph.Handle, 0, len(targets))
		for _, target := range targets {
			h, err := symbols.resolve(target)
			if err != nil {
				return nil, err
			}
			hs = append(hs, h)
		}
		out[FieldTag(f)] = hs
	}
	return out, nil
}

func resolvePair(rd RedirectSpec, symbols symbolTable) (from, to ttgraph.Handle, err error) {
	from, err = symbols.resolve(rd.From)
	if err != nil {
		return
	}
	to, err = symbols.resolve(rd.To)
	return
}
