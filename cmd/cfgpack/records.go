package main

import (
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/cfgpack/errs"
	"github.com/arloliu/cfgpack/record"
	"github.com/arloliu/cfgpack/schema"
)

// parseRecord reads a YAML record: either a sequence in schema order or a mapping keyed by
// slot name.
func parseRecord(s *schema.Schema, data []byte) (record.Record, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}

	switch v := doc.(type) {
	case []any:
		return record.FromNatives(v)
	case map[string]any:
		rec := make(record.Record, s.Len())
		for i, slot := range s.Slots() {
			x, ok := v[slot.Name]
			if !ok {
				return nil, fmt.Errorf("%w: record has no value for slot %q", errs.ErrSchemaMismatch, slot.Name)
			}
			val, err := record.FromNative(x)
			if err != nil {
				return nil, fmt.Errorf("slot %q: %w", slot.Name, err)
			}
			rec[i] = val
			delete(v, slot.Name)
		}

		if len(v) > 0 {
			extra := make([]string, 0, len(v))
			for k := range v {
				extra = append(extra, k)
			}
			slices.Sort(extra)

			return nil, fmt.Errorf("%w: record has unknown slots %v", errs.ErrSchemaMismatch, extra)
		}

		return rec, nil
	case nil:
		return record.Record{}, nil
	default:
		return nil, fmt.Errorf("%w: record must be a sequence or a mapping, got %T", errs.ErrSchemaMismatch, doc)
	}
}

// formatRecord renders rec as YAML, keyed by slot name when every slot is named.
func formatRecord(s *schema.Schema, rec record.Record) ([]byte, error) {
	named := s.Len() > 0
	for _, slot := range s.Slots() {
		if slot.Name == "" {
			named = false
			break
		}
	}

	if !named {
		return yaml.Marshal(rec)
	}

	doc := &yaml.Node{Kind: yaml.MappingNode}
	for i, slot := range s.Slots() {
		var value yaml.Node
		if err := value.Encode(rec[i].Native()); err != nil {
			return nil, fmt.Errorf("slot %q: %w", slot.Name, err)
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: slot.Name},
			&value,
		)
	}

	return yaml.Marshal(doc)
}

func formatValue(v record.Value) ([]byte, error) {
	return yaml.Marshal(v.Native())
}
