package importer

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/sassgo/sass/source"
)

func TestFSResolverExtensions(t *testing.T) {
	fsys := fstest.MapFS{
		"foo.scss":      {Data: []byte("a { b: c }")},
		"bar.sass":      {Data: []byte("a\n  b: c\n")},
		"_partial.scss": {Data: []byte("x { y: z }")},
	}
	r := NewFSResolver(fsys, nil)

	entries, err := r.Resolve("foo", "main.scss")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "foo.scss", entries[0].AbsPath)
	require.Equal(t, source.DialectSCSS, entries[0].Syntax)

	entries, err = r.Resolve("bar", "main.scss")
	require.NoError(t, err)
	require.Equal(t, source.DialectSass, entries[0].Syntax)

	entries, err = r.Resolve("partial", "main.scss")
	require.NoError(t, err)
	require.Equal(t, "_partial.scss", entries[0].AbsPath)
}

func TestFSResolverParentRelative(t *testing.T) {
	fsys := fstest.MapFS{
		"sub/helper.scss": {Data: []byte("h { i: j }")},
	}
	r := NewFSResolver(fsys, nil)

	entries, err := r.Resolve("helper", "sub/main.scss")
	require.NoError(t, err)
	require.Equal(t, "sub/helper.scss", entries[0].AbsPath)
}

func TestFSResolverIncludePaths(t *testing.T) {
	fsys := fstest.MapFS{
		"lib/shared.scss": {Data: []byte("s { t: u }")},
	}
	r := NewFSResolver(fsys, []string{"lib"})

	entries, err := r.Resolve("shared", "main.scss")
	require.NoError(t, err)
	require.Equal(t, "lib/shared.scss", entries[0].AbsPath)
}

func TestFSResolverAmbiguous(t *testing.T) {
	fsys := fstest.MapFS{
		"dup.scss":  {Data: []byte("")},
		"_dup.scss": {Data: []byte("")},
	}
	r := NewFSResolver(fsys, nil)
	_, err := r.Resolve("dup", "main.scss")
	require.Error(t, err)
	require.Contains(t, err.Error(), "ambiguous")
}

func TestFSResolverMiss(t *testing.T) {
	r := NewFSResolver(fstest.MapFS{}, nil)
	entries, err := r.Resolve("nope", "main.scss")
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestChainPriority(t *testing.T) {
	a := Func(func(importPath, parentPath string) ([]Entry, error) {
		return []Entry{{ImportPath: importPath, Contents: "from-a"}}, nil
	})
	b := Func(func(importPath, parentPath string) ([]Entry, error) {
		return []Entry{{ImportPath: importPath, Contents: "from-b"}}, nil
	})
	chain := NewChain(a, b)

	entries, err := chain.Resolve("foo", "")
	require.NoError(t, err)
	require.Equal(t, "from-a", entries[0].Contents)
}

func TestChainFallsThrough(t *testing.T) {
	skip := Func(func(importPath, parentPath string) ([]Entry, error) {
		return nil, nil
	})
	hit := Func(func(importPath, parentPath string) ([]Entry, error) {
		return []Entry{{Contents: "hit"}}, nil
	})
	chain := NewChain(skip, hit)

	entries, err := chain.Resolve("foo", "")
	require.NoError(t, err)
	require.Equal(t, "hit", entries[0].Contents)

	empty := NewChain(skip)
	entries, err = empty.Resolve("foo", "")
	require.NoError(t, err)
	require.Nil(t, entries)
}
