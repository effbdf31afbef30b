package store

import (
	"context"
	"fmt"
)

// LibraryRecord is one stored library with its streamlets in declaration
// order.
type LibraryRecord struct {
	Name       string
	Streamlets []StreamletRecord
}

// StreamletRecord is one stored streamlet.
type StreamletRecord struct {
	Name       string
	Doc        string
	Interfaces []InterfaceRecord
}

// InterfaceRecord is one stored interface. Type is rendered in source
// syntax and round-trips through the parser.
type InterfaceRecord struct {
	Name    string
	Mode    string
	Type    string
	Doc     string
	Streams []StreamRecord
}

// StreamRecord is one lowered physical stream with resolved signal widths.
// Widths of absent signals are zero.
type StreamRecord struct {
	Path           string
	Lanes          uint32
	Dimensionality uint32
	Complexity     string
	Direction      string
	DataBits       uint32
	LastBits       uint32
	StaiBits       uint32
	EndiBits       uint32
	StrbBits       uint32
	UserBits       uint32
}

// ReadLibraries returns the stored project content in the order it was
// written.
func (s *Store) ReadLibraries(ctx context.Context) ([]LibraryRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM libraries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("read libraries: %w", err)
	}
	defer rows.Close()

	var libs []LibraryRecord
	var ids []int64
	for rows.Next() {
		var id int64
		var lib LibraryRecord
		if err := rows.Scan(&id, &lib.Name); err != nil {
			return nil, fmt.Errorf("read libraries: %w", err)
		}
		libs = append(libs, lib)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read libraries: %w", err)
	}

	for i, id := range ids {
		streamlets, err := s.readStreamlets(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("library %q: %w", libs[i].Name, err)
		}
		libs[i].Streamlets = streamlets
	}
	return libs, nil
}

func (s *Store) readStreamlets(ctx context.Context, libID int64) ([]StreamletRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, doc FROM streamlets WHERE library_id = ? ORDER BY id", libID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var streamlets []StreamletRecord
	var ids []int64
	for rows.Next() {
		var id int64
		var sl StreamletRecord
		if err := rows.Scan(&id, &sl.Name, &sl.Doc); err != nil {
			return nil, err
		}
		streamlets = append(streamlets, sl)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		ifaces, err := s.readInterfaces(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("streamlet %q: %w", streamlets[i].Name, err)
		}
		streamlets[i].Interfaces = ifaces
	}
	return streamlets, nil
}

func (s *Store) readInterfaces(ctx context.Context, streamletID int64) ([]InterfaceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, mode, type, doc FROM interfaces WHERE streamlet_id = ? ORDER BY ordinal",
		streamletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ifaces []InterfaceRecord
	var ids []int64
	for rows.Next() {
		var id int64
		var iface InterfaceRecord
		if err := rows.Scan(&id, &iface.Name, &iface.Mode, &iface.Type, &iface.Doc); err != nil {
			return nil, err
		}
		ifaces = append(ifaces, iface)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		streams, err := s.readStreams(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("interface %q: %w", ifaces[i].Name, err)
		}
		ifaces[i].Streams = streams
	}
	return ifaces, nil
}

func (s *Store) readStreams(ctx context.Context, ifaceID int64) ([]StreamRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, lanes, dimensionality, complexity, direction,
			data_bits, last_bits, stai_bits, endi_bits, strb_bits, user_bits
		 FROM physical_streams WHERE interface_id = ? ORDER BY ordinal`,
		ifaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var streams []StreamRecord
	for rows.Next() {
		var sr StreamRecord
		if err := rows.Scan(&sr.Path, &sr.Lanes, &sr.Dimensionality, &sr.Complexity, &sr.Direction,
			&sr.DataBits, &sr.LastBits, &sr.StaiBits, &sr.EndiBits, &sr.StrbBits, &sr.UserBits); err != nil {
			return nil, err
		}
		streams = append(streams, sr)
	}
	return streams, rows.Err()
}
