package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tydi-hdl/tydi/internal/design"
	"github.com/tydi-hdl/tydi/internal/logical"
	"github.com/tydi-hdl/tydi/internal/parser"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "build.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.db")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		require.NoErrorf(t, err, "open iteration %d", i)
		s.Close()
	}

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	for _, table := range []string{"libraries", "streamlets", "interfaces", "physical_streams"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		assert.NoErrorf(t, err, "table %q missing", table)
	}
}

func TestOpenPragmas(t *testing.T) {
	s := openTemp(t)

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("synchronous", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestCloseNilDB(t *testing.T) {
	s := &Store{}
	assert.NoError(t, s.Close())
}

func testProject(t *testing.T) *design.Project {
	t.Helper()
	p, err := design.NewProject("demo")
	require.NoError(t, err)
	lib, err := p.AddLibrary("work")
	require.NoError(t, err)

	mustType := func(src string) logical.Type {
		typ, err := parser.ParseType("test", src)
		require.NoError(t, err)
		return typ
	}
	iface := func(key string, mode design.Mode, src string, opts ...design.InterfaceOption) design.Interface {
		i, err := design.NewInterface(key, mode, mustType(src), opts...)
		require.NoError(t, err)
		return i
	}

	x, err := design.NewStreamlet("X",
		iface("a", design.In, "Stream<Bits<8>, d=1>", design.WithDoc("byte sequences in")),
		iface("b", design.Out, "Group<flag: Bits<1>, resp: Stream<Bits<12>, t=3, d=2, c=7>>"),
	)
	require.NoError(t, err)
	x.SetDoc("example transform")
	_, err = lib.AddStreamlet(x)
	require.NoError(t, err)

	return p
}

func TestWriteReadRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteProject(ctx, testProject(t)))

	libs, err := s.ReadLibraries(ctx)
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Equal(t, "work", libs[0].Name)

	require.Len(t, libs[0].Streamlets, 1)
	sl := libs[0].Streamlets[0]
	assert.Equal(t, "X", sl.Name)
	assert.Equal(t, "example transform", sl.Doc)
	require.Len(t, sl.Interfaces, 2)

	a := sl.Interfaces[0]
	assert.Equal(t, "a", a.Name)
	assert.Equal(t, "in", a.Mode)
	assert.Equal(t, "Stream<Bits<8>, d=1>", a.Type)
	assert.Equal(t, "byte sequences in", a.Doc)
	require.Len(t, a.Streams, 1)
	assert.Equal(t, StreamRecord{
		Path:           "",
		Lanes:          1,
		Dimensionality: 1,
		Complexity:     "0",
		Direction:      "Forward",
		DataBits:       8,
		StrbBits:       1,
	}, a.Streams[0])

	b := sl.Interfaces[1]
	assert.Equal(t, "out", b.Mode)
	require.Len(t, b.Streams, 1)
	assert.Equal(t, StreamRecord{
		Path:           "resp",
		Lanes:          3,
		Dimensionality: 2,
		Complexity:     "7",
		Direction:      "Forward",
		DataBits:       36,
		LastBits:       6,
		StaiBits:       2,
		EndiBits:       2,
		StrbBits:       3,
	}, b.Streams[0])
}

func TestStoredTypesReparse(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteProject(ctx, testProject(t)))

	libs, err := s.ReadLibraries(ctx)
	require.NoError(t, err)

	for _, lib := range libs {
		for _, sl := range lib.Streamlets {
			for _, iface := range sl.Interfaces {
				typ, err := parser.ParseType("stored", iface.Type)
				require.NoErrorf(t, err, "interface %s.%s", sl.Name, iface.Name)
				assert.Equal(t, iface.Type, logical.TypeString(typ))
			}
		}
	}
}

func TestWriteReplacesPreviousBuild(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteProject(ctx, testProject(t)))

	p2, err := design.NewProject("demo")
	require.NoError(t, err)
	lib, err := p2.AddLibrary("other")
	require.NoError(t, err)
	typ, err := parser.ParseType("test", "Stream<Bits<4>>")
	require.NoError(t, err)
	i, err := design.NewInterface("q", design.In, typ)
	require.NoError(t, err)
	sl, err := design.NewStreamlet("Y", i)
	require.NoError(t, err)
	_, err = lib.AddStreamlet(sl)
	require.NoError(t, err)

	require.NoError(t, s.WriteProject(ctx, p2))

	libs, err := s.ReadLibraries(ctx)
	require.NoError(t, err)
	require.Len(t, libs, 1)
	assert.Equal(t, "other", libs[0].Name)

	// Cascade cleared dependents of the first build.
	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM streamlets").Scan(&count))
	assert.Equal(t, 1, count)
}
