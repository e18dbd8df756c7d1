package cli

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/lguimbarda/min-query/query"
	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/faults"
	"github.com/lguimbarda/min-query/query/files"
	"github.com/lguimbarda/min-query/query/group"
	"github.com/lguimbarda/min-query/query/observe"
	"github.com/lguimbarda/min-query/query/order"
	querysql "github.com/lguimbarda/min-query/query/sql"
)

var operators = map[string]func(have, want any) bool{
	"eq": func(have, want any) bool { return compareValues(have, want) == 0 },
	"ne": func(have, want any) bool { return compareValues(have, want) != 0 },
	"lt": func(have, want any) bool { return compareValues(have, want) < 0 },
	"le": func(have, want any) bool { return compareValues(have, want) <= 0 },
	"gt": func(have, want any) bool { return compareValues(have, want) > 0 },
	"ge": func(have, want any) bool { return compareValues(have, want) >= 0 },
	"contains": func(have, want any) bool {
		s, ok := have.(string)
		return ok && strings.Contains(s, fmt.Sprint(want))
	},
	"exists": func(have, _ any) bool { return have != nil },
}

type stage func(core.Sequence[Record]) core.Sequence[Record]

func (s Step) stage() stage {
	switch {
	case s.Where != nil:
		cond := *s.Where
		test := operators[cond.Op]
		return func(seq core.Sequence[Record]) core.Sequence[Record] {
			return query.From(seq).Where(func(r Record) bool { return test(r[cond.Field], cond.Value) })
		}
	case len(s.Select) > 0:
		fields := s.Select
		return func(seq core.Sequence[Record]) core.Sequence[Record] {
			return query.Select(seq, func(r Record) Record {
				out := make(Record, len(fields))
				for _, f := range fields {
					if v, ok := r[f]; ok {
						out[f] = v
					}
				}
				return out
			})
		}
	case len(s.OrderBy) > 0:
		keys := s.OrderBy
		return func(seq core.Sequence[Record]) core.Sequence[Record] {
			o := order.ByFunc(seq, field(keys[0].Field), compareValues, keys[0].Desc)
			for _, k := range keys[1:] {
				o = order.ThenByFunc(o, field(k.Field), compareValues, k.Desc)
			}
			return o
		}
	case s.GroupBy != "":
		return groupBy(s.GroupBy)
	case s.Distinct:
		return func(seq core.Sequence[Record]) core.Sequence[Record] {
			return group.DistinctBy(seq, func(r Record) string { return fmt.Sprint(r) })
		}
	case s.Skip != nil:
		n := *s.Skip
		return func(seq core.Sequence[Record]) core.Sequence[Record] {
			return query.From(seq).Skip(n)
		}
	case s.Take != nil:
		n := *s.Take
		return func(seq core.Sequence[Record]) core.Sequence[Record] {
			return query.From(seq).Take(n)
		}
	}
	panic("cli: step was not validated")
}

func field(name string) func(Record) any {
	return func(r Record) any { return r[name] }
}

// groupBy emits one record per distinct value of name, in order of first
// appearance, holding the value, the group size and the grouped records.
func groupBy(name string) stage {
	return func(seq core.Sequence[Record]) core.Sequence[Record] {
		groups := query.GroupBy(seq, func(r Record) string { return groupKey(r[name]) })
		return query.Select(groups, func(g *group.Grouping[string, Record]) Record {
			elems := g.Elements()
			items := make([]any, len(elems))
			for i, e := range elems {
				items[i] = e
			}
			return Record{"key": elems[0][name], "count": g.Len(), "items": items}
		})
	}
}

// loadRecords reads the dataset at path on every traversal. CSV files are
// keyed by their header row and JSON-lines files hold one record per line;
// anything else is a YAML or JSON list of mappings.
func loadRecords(path string) core.Sequence[Record] {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return query.Select(files.CSVMaps(path), func(row map[string]string) Record {
			rec := make(Record, len(row))
			for k, v := range row {
				rec[k] = scalar(v)
			}
			return rec
		})
	case ".jsonl", ".ndjson":
		return files.JSONLines[Record](path)
	}
	return core.Deferred(func(context.Context) ([]Record, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read data file: %w", err)
		}
		var records []Record
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parse data file %s: %w", path, err)
		}
		return records, nil
	})
}

// scalar types a CSV field the way YAML would: integers, floats and
// booleans become values of those types, the rest stays a string.
func scalar(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if s == "true" || s == "false" {
		return s == "true"
	}
	return s
}

// Runner executes query files.
type Runner struct {
	Logger *zap.Logger

	// SkipFaults drops faulty source records instead of failing the query.
	SkipFaults bool

	// MaxBuffered caps what ordering and grouping steps may hold. Zero
	// means unlimited.
	MaxBuffered int
}

// Run executes qf and hands every resulting record to emit, stopping at
// the first fault or emit error.
func (r Runner) Run(ctx context.Context, qf *QueryFile, emit func(Record) error) error {
	if err := qf.Source.Validate(); err != nil {
		return err
	}
	ctx, err := query.WithTraversalConfig(ctx, query.TraversalConfig{CheckContext: true, MaxBuffered: r.MaxBuffered})
	if err != nil {
		return err
	}
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx = observe.WithLogger(ctx, logger)

	var src core.Sequence[Record]
	switch {
	case qf.Source.File != "":
		src = loadRecords(qf.Source.File)
	default:
		if _, err := os.Stat(qf.Source.SQLite); err != nil {
			return fmt.Errorf("open sqlite database: %w", err)
		}
		db, err := sql.Open("sqlite3", qf.Source.SQLite)
		if err != nil {
			return fmt.Errorf("open sqlite database: %w", err)
		}
		defer db.Close()
		src = querysql.QueryMaps(db, qf.Source.SQL)
	}

	seq := observe.Logged(src, "source")
	if r.SkipFaults {
		seq = faults.IgnoreErrors[Record]().Apply(seq)
	}
	for _, step := range qf.Steps {
		seq = step.stage()(seq)
	}

	logger.Debug("running query", zap.Int("steps", len(qf.Steps)))
	for rec, err := range query.From(seq).All(ctx) {
		if err != nil {
			return err
		}
		if err := emit(rec); err != nil {
			return err
		}
	}
	return nil
}
