package frag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runFragment(t *testing.T, code string, env *Environment) error {
	t.Helper()
	f, err := Compile(1, code)
	require.NoError(t, err)
	return f.Run(context.Background(), env)
}

func objectEnv(name string, props map[string]Value) *Environment {
	env := NewEnvironment()
	env.Set(name, NewObject(props))
	return env
}

const yearRange = `if (preg_match('/\((\d{4})-(\d{4})\)/', $o->ext_desc, $m)) { $x = $m[1]; }`

func TestExtractYearRange(t *testing.T) {
	env := objectEnv("o", map[string]Value{"ext_desc": NewString("Built (1921-2345) in stone")})
	require.NoError(t, runFragment(t, yearRange, env))

	m, ok := env.Get("m")
	require.True(t, ok)
	assert.Equal(t, NewStrings("(1921-2345)", "1921", "2345"), m)
	x, ok := env.Get("x")
	require.True(t, ok)
	assert.Equal(t, NewString("1921"), x)
}

func TestExtractYearRangeNoMatch(t *testing.T) {
	env := objectEnv("o", map[string]Value{"ext_desc": NewString("no numbers here")})
	require.NoError(t, runFragment(t, yearRange, env))

	_, ok := env.Get("m")
	assert.False(t, ok)
	_, ok = env.Get("x")
	assert.False(t, ok)
	assert.Equal(t, []string{"o"}, env.Names())
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		env       map[string]Value
		want      map[string]Value
		errorKind ErrorKind
	}{
		{
			name: "elseif branch",
			code: `if (preg_match('/a/', $s)) { $r = 'a'; } elseif (preg_match('/b/', $s)) { $r = 'b'; } else { $r = 'c'; }`,
			env:  map[string]Value{"s": NewString("b")},
			want: map[string]Value{"s": NewString("b"), "r": NewString("b")},
		},
		{
			name: "else if branch",
			code: `if (preg_match('/a/', $s)) { $r = 'a'; } else if (preg_match('/b/', $s)) { $r = 'b'; }`,
			env:  map[string]Value{"s": NewString("b")},
			want: map[string]Value{"s": NewString("b"), "r": NewString("b")},
		},
		{
			name: "else branch",
			code: `if (preg_match('/a/', $s)) { $r = 'a'; } elseif (preg_match('/b/', $s)) { $r = 'b'; } else { $r = 'c'; }`,
			env:  map[string]Value{"s": NewString("z")},
			want: map[string]Value{"s": NewString("z"), "r": NewString("c")},
		},
		{
			name: "unbraced bodies",
			code: "if ($flag) $r = 'yes'; else $r = 'no';",
			env:  map[string]Value{"flag": Bool{Value: false}},
			want: map[string]Value{"flag": Bool{Value: false}, "r": NewString("no")},
		},
		{
			name: "zero string is falsy",
			code: `if ($s) { $r = 1; }`,
			env:  map[string]Value{"s": NewString("0")},
			want: map[string]Value{"s": NewString("0")},
		},
		{
			name: "unbound condition is falsy",
			code: `if ($missing) { $r = 1; }`,
			want: map[string]Value{},
		},
		{
			name: "negated condition",
			code: `if (!preg_match('/x/', $s)) { $r = 'none'; }`,
			env:  map[string]Value{"s": NewString("abc")},
			want: map[string]Value{"s": NewString("abc"), "r": NewString("none")},
		},
		{
			name: "literal assignments",
			code: `$a = 'one'; $b = 2; $c = 1.5; $d = true; $e = null; $f = 0x10;`,
			want: map[string]Value{
				"a": NewString("one"),
				"b": Integer{Value: 2},
				"c": Float{Value: 1.5},
				"d": Bool{Value: true},
				"e": Null{},
				"f": Integer{Value: 16},
			},
		},
		{
			name: "property assignment",
			code: `$o->y = $o->x;`,
			env:  map[string]Value{"o": NewObject(map[string]Value{"x": NewString("v")})},
			want: map[string]Value{"o": NewObject(map[string]Value{"x": NewString("v"), "y": NewString("v")})},
		},
		{
			name: "property assignment to an empty object",
			code: `$o->x = 'v';`,
			env:  map[string]Value{"o": Object{}},
			want: map[string]Value{"o": NewObject(map[string]Value{"x": NewString("v")})},
		},
		{
			name: "array append",
			code: `$a[] = 'x'; $a[] = 'y';`,
			want: map[string]Value{"a": NewStrings("x", "y")},
		},
		{
			name: "array overwrite",
			code: `$a[0] = 'z'; $a[2] = 'w';`,
			env:  map[string]Value{"a": NewStrings("x", "y")},
			want: map[string]Value{"a": NewStrings("z", "y", "w")},
		},
		{
			name: "assignment copies arrays",
			code: `$b = $a; $b[] = 'x';`,
			env:  map[string]Value{"a": NewStrings("p")},
			want: map[string]Value{"a": NewStrings("p"), "b": NewStrings("p", "x")},
		},
		{
			name: "call statement",
			code: `preg_match('/(\w+)@/', 'me@example.com', $m);`,
			want: map[string]Value{"m": NewStrings("me@", "me")},
		},
		{
			name: "comments are ignored",
			code: "// leading\n$a = 'x'; # trailing\n/* block */ $b = 'y';",
			want: map[string]Value{"a": NewString("x"), "b": NewString("y")},
		},
		{
			name:      "assignment past the end",
			code:      `$a[5] = 'z';`,
			env:       map[string]Value{"a": NewStrings("x")},
			want:      map[string]Value{"a": NewStrings("x")},
			errorKind: NotImplemented,
		},
		{
			name:      "concatenation",
			code:      `$x = $a . $b;`,
			env:       map[string]Value{"a": NewString("a"), "b": NewString("b")},
			want:      map[string]Value{"a": NewString("a"), "b": NewString("b")},
			errorKind: NotImplemented,
		},
		{
			name:      "comparison condition",
			code:      `if ($a == 'x') { $r = 1; }`,
			env:       map[string]Value{"a": NewString("x")},
			want:      map[string]Value{"a": NewString("x")},
			errorKind: NotImplemented,
		},
		{
			name:      "bare variable statement",
			code:      `$a;`,
			want:      map[string]Value{},
			errorKind: NotImplemented,
		},
		{
			name:      "property assignment to non-object",
			code:      `$s->y = 'v';`,
			env:       map[string]Value{"s": NewString("str")},
			want:      map[string]Value{"s": NewString("str")},
			errorKind: WrongVariableType,
		},
		{
			name:      "failure aborts the remaining statements",
			code:      `$a = 'one'; $b = $o->missing; $c = 'three';`,
			env:       map[string]Value{"o": NewObject(nil)},
			want:      map[string]Value{"o": NewObject(nil), "a": NewString("one")},
			errorKind: NoSuchProperty,
		},
		{
			name:      "failure inside a branch aborts the fragment",
			code:      `if (preg_match('/a/', 'a')) { $b = $nope->x; } $c = 'after';`,
			want:      map[string]Value{},
			errorKind: NoSuchVariable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := NewEnvironment()
			for k, v := range tt.env {
				env.Set(k, v)
			}
			err := runFragment(t, tt.code, env)
			if tt.errorKind != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.errorKind, KindOf(err), err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, env.Variables)
		})
	}
}

func TestRunCanceled(t *testing.T) {
	f, err := Compile(1, `$a = 'x';`)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env := NewEnvironment()
	err = f.Run(ctx, env)
	require.Error(t, err)
	assert.Equal(t, Canceled, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, env.Variables)
}

func TestRunEmptyFragment(t *testing.T) {
	env := NewEnvironment()
	require.NoError(t, runFragment(t, "", env))
	require.NoError(t, runFragment(t, "\n// nothing\n", env))
	assert.Empty(t, env.Variables)
}

func TestAssignIntoSeededEmptyObject(t *testing.T) {
	env, err := NewEnvironmentFrom(map[string]any{"o": Object{}})
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		require.NoError(t, runFragment(t, `$o->x = 'v'; $o->y = $o->x;`, env))
	})
	o, _ := env.Get("o")
	assert.Equal(t, NewObject(map[string]Value{"x": NewString("v"), "y": NewString("v")}), o)
}
