package corpus

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// ErrCorpusNotFound is returned when a named corpus does not exist in the
// store.
var ErrCorpusNotFound = errors.New("corpus not found")

// schemaVersion is written to PRAGMA user_version after setup. Future
// migrations bump it and translate older layouts in SetupSchema.
const schemaVersion = 1

// SetupSchema initializes the corpus tables in the provided database. It is
// idempotent and safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {
	const (
		schemaCorpora = `
CREATE TABLE IF NOT EXISTS corpora (
    corpus_id   INTEGER PRIMARY KEY,
    corpus_name TEXT    NOT NULL UNIQUE
);
`
		schemaNames = `
CREATE TABLE IF NOT EXISTS corpus_names (
    corpus_id INTEGER NOT NULL,
    position  INTEGER NOT NULL,
    name      TEXT    NOT NULL,
    PRIMARY KEY (corpus_id, position)
);
`
	)

	var version int
	if err := db.QueryRow(`PRAGMA user_version;`).Scan(&version); err != nil {
		return fmt.Errorf("could not read schema version: %w", err)
	}
	if version > schemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, schemaVersion)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaCorpora); err != nil {
		return fmt.Errorf("could not create corpora schema: %w", err)
	}
	if _, err = tx.Exec(schemaNames); err != nil {
		return fmt.Errorf("could not create corpus names schema: %w", err)
	}
	if _, err = tx.Exec(fmt.Sprintf("PRAGMA user_version = %d;", schemaVersion)); err != nil {
		return fmt.Errorf("could not set schema version: %w", err)
	}
	return tx.Commit()
}

// CorpusInfo summarizes one stored corpus.
type CorpusInfo struct {
	Name  string `json:"name"`
	Names int    `json:"names"` // stored lines, duplicates included
}

// Store persists named training corpora in SQLite, preserving line order
// and duplicates exactly as supplied. It holds prepared statements for its
// hot paths; call Close when the Store is no longer needed.
type Store struct {
	db             *sql.DB
	stmtGetID      *sql.Stmt
	stmtInsert     *sql.Stmt
	stmtList       *sql.Stmt
	stmtGetNames   *sql.Stmt
	stmtMaxPos     *sql.Stmt
	stmtInsertName *sql.Stmt
	logger         *slog.Logger
}

// NewStore creates a Store over db, pre-compiling its SQL statements. The
// schema must already be in place (see SetupSchema).
func NewStore(db *sql.DB) (*Store, error) {
	stmtGetID, err := db.Prepare(`SELECT corpus_id FROM corpora WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtInsert, err := db.Prepare(`INSERT INTO corpora (corpus_name) VALUES (?) ON CONFLICT(corpus_name) DO UPDATE SET corpus_name = excluded.corpus_name RETURNING corpus_id;`)
	if err != nil {
		return nil, err
	}

	stmtList, err := db.Prepare(`SELECT c.corpus_name, COUNT(n.name) FROM corpora c LEFT JOIN corpus_names n ON n.corpus_id = c.corpus_id GROUP BY c.corpus_id ORDER BY c.corpus_name;`)
	if err != nil {
		return nil, err
	}

	stmtGetNames, err := db.Prepare(`SELECT name FROM corpus_names WHERE corpus_id = ? ORDER BY position;`)
	if err != nil {
		return nil, err
	}

	stmtMaxPos, err := db.Prepare(`SELECT coalesce(MAX(position), -1) FROM corpus_names WHERE corpus_id = ?;`)
	if err != nil {
		return nil, err
	}

	stmtInsertName, err := db.Prepare(`INSERT INTO corpus_names (corpus_id, position, name) VALUES (?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:             db,
		stmtGetID:      stmtGetID,
		stmtInsert:     stmtInsert,
		stmtList:       stmtList,
		stmtGetNames:   stmtGetNames,
		stmtMaxPos:     stmtMaxPos,
		stmtInsertName: stmtInsertName,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases the prepared statements held by the Store.
func (s *Store) Close() {
	_ = s.stmtGetID.Close()
	_ = s.stmtInsert.Close()
	_ = s.stmtList.Close()
	_ = s.stmtGetNames.Close()
	_ = s.stmtMaxPos.Close()
	_ = s.stmtInsertName.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are
// discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// corpusID resolves a corpus name, mapping sql.ErrNoRows to
// ErrCorpusNotFound.
func (s *Store) corpusID(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.stmtGetID.QueryRowContext(ctx, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("corpus %q: %w", name, ErrCorpusNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Put creates or fully replaces the corpus with the given name, storing
// names in order with duplicates preserved.
func (s *Store) Put(ctx context.Context, name string, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var id int64
	if err = tx.StmtContext(ctx, s.stmtInsert).QueryRowContext(ctx, name).Scan(&id); err != nil {
		return fmt.Errorf("failed to upsert corpus %q: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM corpus_names WHERE corpus_id = ?`, id); err != nil {
		return fmt.Errorf("failed to clear corpus %q: %w", name, err)
	}

	insert := tx.StmtContext(ctx, s.stmtInsertName)
	for i, n := range names {
		if _, err = insert.ExecContext(ctx, id, i, n); err != nil {
			return fmt.Errorf("failed to store name %d of corpus %q: %w", i, name, err)
		}
	}

	s.logger.InfoContext(ctx, "Corpus stored",
		slog.String("corpus", name),
		slog.Int("names", len(names)),
	)
	return tx.Commit()
}

// AppendNames adds names to the end of an existing corpus, keeping the
// stored order.
func (s *Store) AppendNames(ctx context.Context, name string, names []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var id int64
	err = tx.StmtContext(ctx, s.stmtGetID).QueryRowContext(ctx, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("corpus %q: %w", name, ErrCorpusNotFound)
	}
	if err != nil {
		return err
	}

	var next int
	if err = tx.StmtContext(ctx, s.stmtMaxPos).QueryRowContext(ctx, id).Scan(&next); err != nil {
		return fmt.Errorf("failed to find the end of corpus %q: %w", name, err)
	}
	next++

	insert := tx.StmtContext(ctx, s.stmtInsertName)
	for i, n := range names {
		if _, err = insert.ExecContext(ctx, id, next+i, n); err != nil {
			return fmt.Errorf("failed to append name %d to corpus %q: %w", i, name, err)
		}
	}

	s.logger.InfoContext(ctx, "Corpus extended",
		slog.String("corpus", name),
		slog.Int("appended", len(names)),
	)
	return tx.Commit()
}

// Get returns the stored names of a corpus in their original order,
// duplicates included.
func (s *Store) Get(ctx context.Context, name string) ([]string, error) {
	id, err := s.corpusID(ctx, name)
	if err != nil {
		return nil, err
	}

	rows, err := s.stmtGetNames.QueryContext(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query corpus %q: %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var names []string
	for rows.Next() {
		var n string
		if err = rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// List returns every stored corpus with its name count, sorted by name.
func (s *Store) List(ctx context.Context) ([]CorpusInfo, error) {
	rows, err := s.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var infos []CorpusInfo
	for rows.Next() {
		var info CorpusInfo
		if err = rows.Scan(&info.Name, &info.Names); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a corpus and its names.
func (s *Store) Delete(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	var id int64
	err = tx.StmtContext(ctx, s.stmtGetID).QueryRowContext(ctx, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("corpus %q: %w", name, ErrCorpusNotFound)
	}
	if err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM corpus_names WHERE corpus_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete names of corpus %q: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM corpora WHERE corpus_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete corpus %q: %w", name, err)
	}

	s.logger.InfoContext(ctx, "Corpus deleted", slog.String("corpus", name))
	return tx.Commit()
}

// Export writes the corpus to w as it was supplied, one name per line.
func (s *Store) Export(ctx context.Context, name string, w io.Writer) error {
	names, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	for _, n := range names {
		if _, err = bw.WriteString(n); err != nil {
			return err
		}
		if err = bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
