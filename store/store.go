// Package store persists stabilisation runs in a SQLite database: one row
// per run, the final status of every DoF component, and the weights of every
// constraint attached by the run.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/notargets/gocut/cut"
	"github.com/notargets/gocut/dof"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

type Store struct {
	db *sql.DB
}

// Run is the summary row of a stored stabilisation pass
type Run struct {
	ID            string
	Title         string
	Created       time.Time
	Tolerance     float64
	MaxIterations int
	Lower, Upper  float64
	RefMeasure    float64
	Degenerate    int
	ThreeRing     int
	Exhausted     int
}

// Open opens or creates the database at path and ensures the schema exists
func Open(path string) (s *Store, err error) {
	var db *sql.DB
	if db, err = sql.Open("sqlite", path); err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err = db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun writes the report and the constraint state of f in a single
// transaction and returns the generated run id.
func (s *Store) SaveRun(title string, rep *cut.Report, f *dof.Field) (runID string, err error) {
	var (
		tx     *sql.Tx
		donors = make(map[int]int, len(rep.Entries))
	)
	for _, e := range rep.Entries {
		donors[e.DoF] = e.Donor
	}
	runID = generateUUID()
	if tx, err = s.db.Begin(); err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.Exec(`INSERT INTO runs (run_id, title, created_at, tolerance, max_iterations,
		lower_threshold, upper_threshold, ref_measure, degenerate, three_ring, exhausted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, title, time.Now().UTC().Format(time.RFC3339), rep.Tolerance, rep.MaxIterations,
		rep.Thresholds.Lower, rep.Thresholds.Upper, rep.RefMeasure, rep.Degenerate(),
		rep.ThreeRingFallbacks, rep.Exhausted)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	var dofStmt, wStmt *sql.Stmt
	if dofStmt, err = tx.Prepare(`INSERT INTO dofs (run_id, dof_id, component, status, donor, inhomogeneity)
		VALUES (?, ?, ?, ?, ?, ?)`); err != nil {
		return "", fmt.Errorf("preparing dof insert: %w", err)
	}
	defer dofStmt.Close()
	if wStmt, err = tx.Prepare(`INSERT INTO weights (run_id, dof_id, component, position,
		donor_dof, donor_component, weight) VALUES (?, ?, ?, ?, ?, ?, ?)`); err != nil {
		return "", fmt.Errorf("preparing weight insert: %w", err)
	}
	defer wStmt.Close()

	for _, d := range f.DoFs {
		for comp := 0; comp < d.Size(); comp++ {
			var donor, inhom any
			c := d.Constraint(comp)
			if c != nil {
				inhom = c.Inhomogeneity
				if e, ok := donors[d.ID]; ok && !c.IsDirichlet() {
					donor = e
				}
			}
			if _, err = dofStmt.Exec(runID, d.ID, comp, d.Status(comp).String(), donor, inhom); err != nil {
				return "", fmt.Errorf("inserting DoF %d: %w", d.ID, err)
			}
			if c == nil {
				continue
			}
			for pos, w := range c.Weights {
				if _, err = wStmt.Exec(runID, d.ID, comp, pos, w.DoF, w.Component, w.Weight); err != nil {
					return "", fmt.Errorf("inserting weights of DoF %d: %w", d.ID, err)
				}
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs lists the stored runs, oldest first
func (s *Store) Runs() (runs []Run, err error) {
	rows, err := s.db.Query(`SELECT run_id, title, created_at, tolerance, max_iterations,
		lower_threshold, upper_threshold, ref_measure, degenerate, three_ring, exhausted FROM runs ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			r       Run
			created string
		)
		if err = rows.Scan(&r.ID, &r.Title, &created, &r.Tolerance, &r.MaxIterations,
			&r.Lower, &r.Upper, &r.RefMeasure, &r.Degenerate, &r.ThreeRing, &r.Exhausted); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.Created, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Status returns the stored status of a DoF component
func (s *Store) Status(runID string, dofID, component int) (status string, err error) {
	err = s.db.QueryRow(`SELECT status FROM dofs WHERE run_id = ? AND dof_id = ? AND component = ?`,
		runID, dofID, component).Scan(&status)
	if err != nil {
		return "", fmt.Errorf("reading status of DoF %d: %w", dofID, err)
	}
	return
}

// Constraint rebuilds a stored constraint. It returns nil when the component
// was not constrained in the run.
func (s *Store) Constraint(runID string, dofID, component int) (c *dof.Constraint, err error) {
	var inhom sql.NullFloat64
	err = s.db.QueryRow(`SELECT inhomogeneity FROM dofs WHERE run_id = ? AND dof_id = ? AND component = ?`,
		runID, dofID, component).Scan(&inhom)
	if err != nil {
		return nil, fmt.Errorf("reading DoF %d: %w", dofID, err)
	}
	if !inhom.Valid {
		return nil, nil
	}
	c = &dof.Constraint{Inhomogeneity: inhom.Float64}
	rows, err := s.db.Query(`SELECT donor_dof, donor_component, weight FROM weights
		WHERE run_id = ? AND dof_id = ? AND component = ? ORDER BY position`, runID, dofID, component)
	if err != nil {
		return nil, fmt.Errorf("querying weights of DoF %d: %w", dofID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var w dof.WeightedDoF
		if err = rows.Scan(&w.DoF, &w.Component, &w.Weight); err != nil {
			return nil, fmt.Errorf("scanning weight: %w", err)
		}
		c.Weights = append(c.Weights, w)
	}
	return c, rows.Err()
}

func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
