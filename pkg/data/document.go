package data

import (
	"database/sql"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Splits a document can belong to, mirroring the by-date archive layout.
const (
	SplitTrain = "train"
	SplitTest  = "test"
	SplitAll   = "all"
)

// Splits lists the valid values for a split query.
var Splits = []string{SplitTrain, SplitTest, SplitAll}

const (
	insertDocumentSQL = `INSERT INTO document (
			category,
			split,
			name,
			body
		)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (category, split, name) DO UPDATE SET
			body = ?
	`

	selectDocumentSQL = `SELECT
			category,
			split,
			name,
			body
		FROM document
		WHERE category IN (?, ?)
	`

	countDocumentSQL = `SELECT COUNT(*) FROM document`

	deleteDocumentSQL = `DELETE FROM document`
)

// Document is one cached, already-stripped newsgroup post.
type Document struct {
	Category string `json:"category"`
	Split    string `json:"split"`
	Name     string `json:"name"`
	Body     string `json:"body"`
}

// SaveDocuments inserts the documents in a single transaction.
func SaveDocuments(db *sql.DB, docs []*Document) error {
	if db == nil {
		return errDBNotInitialized
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	stmt, err := tx.Prepare(insertDocumentSQL)
	if err != nil {
		_ = tx.Rollback()
		return errors.Wrap(err, "failed to prepare document insert")
	}
	defer stmt.Close()

	for _, d := range docs {
		if _, err := stmt.Exec(d.Category, d.Split, d.Name, d.Body, d.Body); err != nil {
			_ = tx.Rollback()
			return errors.Wrapf(err, "failed to insert document: %s/%s", d.Category, d.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit documents")
	}

	log.Debugf("saved %d documents", len(docs))
	return nil
}

// GetDocuments returns the cached documents for the two categories,
// optionally limited to one split. Rows come back in a stable order
// (category, split, name) so downstream shuffles are reproducible.
func GetDocuments(db *sql.DB, cat0, cat1, split string) ([]*Document, error) {
	if db == nil {
		return nil, errDBNotInitialized
	}

	q := selectDocumentSQL
	args := []any{cat0, cat1}
	if split != "" && split != SplitAll {
		q += ` AND split = ?`
		args = append(args, split)
	}
	q += ` ORDER BY category, split, name`

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query documents")
	}
	defer rows.Close()

	var docs []*Document
	for rows.Next() {
		d := &Document{}
		if err := rows.Scan(&d.Category, &d.Split, &d.Name, &d.Body); err != nil {
			return nil, errors.Wrap(err, "failed to scan document row")
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating document rows")
	}
	return docs, nil
}

// CountDocuments returns the total number of cached documents.
func CountDocuments(db *sql.DB) (int, error) {
	if db == nil {
		return 0, errDBNotInitialized
	}
	var n int
	if err := db.QueryRow(countDocumentSQL).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "failed to count documents")
	}
	return n, nil
}

// DeleteDocuments clears the cache, used by fetch --fresh.
func DeleteDocuments(db *sql.DB) error {
	if db == nil {
		return errDBNotInitialized
	}
	if _, err := db.Exec(deleteDocumentSQL); err != nil {
		return errors.Wrap(err, "failed to delete documents")
	}
	return nil
}
