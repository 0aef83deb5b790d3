package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/dbsteward/partitioner/lib/partition"
)

// File is the policy file: which tables to maintain and how
type File struct {
	Schema   string        `yaml:"schema"`
	Timezone string        `yaml:"timezone"`
	Tables   []TablePolicy `yaml:"tables"`
}

type TablePolicy struct {
	Name            string                    `yaml:"name"`
	Range           partition.RangeType       `yaml:"range"`
	Retention       *int                      `yaml:"retention"`
	RetentionPolicy partition.RetentionPolicy `yaml:"retention_policy"`
	Buffer          int                       `yaml:"buffer"`
	Schedule        string                    `yaml:"schedule"`
}

func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening policy file")
	}
	defer f.Close()
	file, err := ParseFile(f)
	if err != nil {
		return nil, errors.Wrapf(err, "reading policy file %s", path)
	}
	return file, nil
}

// ParseFile decodes a policy file, rejecting unknown keys and duplicate or
// invalid tables
func ParseFile(r io.Reader) (*File, error) {
	file := &File{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(file); err != nil && err != io.EOF {
		return nil, err
	}
	if file.Timezone != "" {
		if _, err := time.LoadLocation(file.Timezone); err != nil {
			return nil, errors.Wrapf(err, "invalid timezone %q", file.Timezone)
		}
	}
	seen := map[string]bool{}
	for _, table := range file.Tables {
		if seen[table.Name] {
			return nil, errors.Errorf("table %s is listed more than once", table.Name)
		}
		seen[table.Name] = true
		if _, err := table.Config(); err != nil {
			return nil, err
		}
	}
	return file, nil
}

// Table returns the entry for name, or nil
func (f *File) Table(name string) *TablePolicy {
	for i := range f.Tables {
		if f.Tables[i].Name == name {
			return &f.Tables[i]
		}
	}
	return nil
}

func (tp TablePolicy) Config() (partition.Config, error) {
	retention := partition.DefaultRetention
	if tp.Retention != nil {
		retention = *tp.Retention
	}
	cfg, err := partition.NewConfig(tp.Name,
		partition.WithRangeType(tp.Range),
		partition.WithRetention(retention, tp.RetentionPolicy),
		partition.WithBuffer(tp.Buffer),
	)
	if err != nil {
		return partition.Config{}, errors.Wrapf(err, "table %s", tp.Name)
	}
	return cfg, nil
}
