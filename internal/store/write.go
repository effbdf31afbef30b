package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/logical"
)

// WriteProject stores a compiled project, replacing any previously stored
// content. Libraries, streamlets and interfaces are written in declaration
// order; each interface is lowered and its physical streams stored with
// resolved signal widths. The write is transactional: a failed lowering
// leaves the database untouched.
func (s *Store) WriteProject(ctx context.Context, p *design.Project) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write: %w", err)
	}
	defer tx.Rollback()

	// A build database holds one project; cascade clears the rest.
	if _, err := tx.ExecContext(ctx, "DELETE FROM libraries"); err != nil {
		return fmt.Errorf("clear previous build: %w", err)
	}

	for _, lib := range p.Libraries() {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO libraries (name) VALUES (?)", string(lib.Key()))
		if err != nil {
			return fmt.Errorf("write library %q: %w", lib.Key(), err)
		}
		libID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("write library %q: %w", lib.Key(), err)
		}

		for _, sl := range lib.Streamlets() {
			if err := writeStreamlet(ctx, tx, libID, sl); err != nil {
				return fmt.Errorf("write streamlet %q::%q: %w", lib.Key(), sl.Key(), err)
			}
		}
	}

	return tx.Commit()
}

func writeStreamlet(ctx context.Context, tx *sql.Tx, libID int64, sl *design.Streamlet) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO streamlets (library_id, name, doc) VALUES (?, ?, ?)",
		libID, string(sl.Key()), sl.Doc())
	if err != nil {
		return err
	}
	streamletID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for ordinal, iface := range sl.Interfaces() {
		if err := writeInterface(ctx, tx, streamletID, ordinal, iface); err != nil {
			return fmt.Errorf("interface %q: %w", iface.Key(), err)
		}
	}
	return nil
}

func writeInterface(ctx context.Context, tx *sql.Tx, streamletID int64, ordinal int, iface design.Interface) error {
	res, err := tx.ExecContext(ctx,
		"INSERT INTO interfaces (streamlet_id, ordinal, name, mode, type, doc) VALUES (?, ?, ?, ?, ?, ?)",
		streamletID, ordinal, string(iface.Key()), iface.Mode().String(),
		logical.TypeString(iface.Type()), iface.Doc())
	if err != nil {
		return err
	}
	ifaceID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	syn, err := logical.Synthesize(iface.Type())
	if err != nil {
		return err
	}
	for idx, ls := range syn.Streams() {
		ps := ls.Stream
		_, err := tx.ExecContext(ctx,
			`INSERT INTO physical_streams
				(interface_id, ordinal, path, lanes, dimensionality, complexity, direction,
				 data_bits, last_bits, stai_bits, endi_bits, strb_bits, user_bits)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ifaceID, idx, ls.Path.Join("."),
			ps.ElementLanes(), ps.Dimensionality(), ps.Complexity().String(), ps.Direction().String(),
			ps.DataBitCount(), ps.LastBitCount(), ps.StaiBitCount(), ps.EndiBitCount(),
			ps.StrbBitCount(), ps.UserBitCount())
		if err != nil {
			return fmt.Errorf("stream %q: %w", ls.Path.Join("."), err)
		}
	}
	return nil
}
