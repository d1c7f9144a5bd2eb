package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbl8/wick/model"
)

const program = `statistics fermi
iterate k 1 4 {
  index p$k general physical
}
mode full
term vev 1 a(p3) a(p4) a+(p1) a+(p2)
mode general
term pair 1 a(p1) a+(p2)
`

const vevTensor = `-\delta^{p3}_{p1}\delta^{p4}_{p2} + \delta^{p3}_{p2}\delta^{p4}_{p1}`

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.wick")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRunTensor(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "run", writeProgram(t, program), "--format", "tensor")
	require.NoError(t, err)
	assert.Contains(t, out, "vev = "+vevTensor+"\n")
	assert.Contains(t, out, `pair = -a^{p2}_{p1} + \delta^{p1}_{p2}`+"\n")
}

func TestRunFullOverride(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "run", writeProgram(t, program), "--full", "--format", "tensor")
	require.NoError(t, err)
	assert.Contains(t, out, `pair = \delta^{p1}_{p2}`+"\n")
}

func TestRunJSON(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "run", writeProgram(t, program), "--format", "json", "--workers", "1")
	require.NoError(t, err)

	var docs []model.Result
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "vev", docs[0].Name)
	assert.Equal(t, "full", docs[0].Mode)
	assert.Len(t, docs[0].Terms, 2)
	assert.Equal(t, "pair", docs[1].Name)
	assert.Len(t, docs[1].Terms, 2)
}

func TestRunOutThenShow(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	src := writeProgram(t, program)
	base := filepath.Join(dir, "result.wres")

	_, _, err := execute(t, "run", src, "--out", base)
	require.NoError(t, err)

	vevPath := filepath.Join(dir, "result-vev.wres")
	require.FileExists(t, vevPath)
	require.FileExists(t, filepath.Join(dir, "result-pair.wres"))

	out, _, err := execute(t, "show", vevPath, "--format", "tensor")
	require.NoError(t, err)
	assert.Contains(t, out, "# vev (full, FermiDirac)")
	assert.Contains(t, out, "vev = "+vevTensor+"\n")
}

func TestRunReportsFailedTerms(t *testing.T) {
	t.Parallel()
	src := "index i occupied fermi\nindex a virtual fermi\nterm hf 1 a(i) a+(a)\n"
	_, stderr, err := execute(t, "run", writeProgram(t, src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 terms failed")
	assert.Contains(t, stderr, "hf: unsupported vacuum")
}

func TestRunOutNamesSurvivorOfFailedTerm(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	base := filepath.Join(dir, "result.wres")
	src := "index i occupied fermi\nindex p general physical\nterm hf 1 a(i) a+(i)\nterm ok 1 a(p) a+(p)\n"

	_, _, err := execute(t, "run", writeProgram(t, src), "--out", base)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 terms failed")
	assert.FileExists(t, filepath.Join(dir, "result-ok.wres"))
	assert.NoFileExists(t, base)
}

func TestRunOutEscapesTermName(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	base := filepath.Join(dir, "result.wres")
	src := "index p general physical\nindex q general physical\nterm x/y 1 a(p) a+(q)\nterm z 1 a+(p)\n"

	_, _, err := execute(t, "run", writeProgram(t, src), "--out", base)
	require.NoError(t, err)

	doc, err := model.ReadFile(filepath.Join(dir, "result-x_y.wres"))
	require.NoError(t, err)
	assert.Equal(t, "x/y", doc.Name)
	assert.NoDirExists(t, filepath.Join(dir, "result-x"))
}

func TestOutputPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		term string
		n    int
		want string
	}{
		{"single term", "vev", 1, "out/r.wres"},
		{"several terms", "vev", 3, "out/r-vev.wres"},
		{"separator", "x/y", 2, "out/r-x_y.wres"},
		{"backslash", `x\y`, 2, "out/r-x_y.wres"},
		{"parent", "..", 2, "out/r-...wres"},
		{"unicode letters kept", "énergie_2", 2, "out/r-énergie_2.wres"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, outputPath("out/r.wres", tt.term, tt.n))
		})
	}
}

func TestRunCompileError(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, "run", writeProgram(t, "term t 1 a(x)\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, "run", writeProgram(t, program), "--format", "html")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	t.Parallel()
	src := program + "index spare general physical\nterm odd 1 a(p1) a(p2) a+(p3)\n"
	path := writeProgram(t, src)

	out, _, err := execute(t, "check", path, "--full")
	require.NoError(t, err)
	assert.Contains(t, out, "term odd: 1 creators and 2 annihilators: full contraction is zero")
	assert.Contains(t, out, `index "spare" is declared but never used`)
	assert.Contains(t, out, "5 indices, 3 terms, 2 warnings")

	_, _, err = execute(t, "check", path, "--strict")
	assert.Error(t, err)
}

func TestShowMissingFile(t *testing.T) {
	t.Parallel()
	_, _, err := execute(t, "show", filepath.Join(t.TempDir(), "missing.wres"))
	assert.Error(t, err)
}

func TestPerf(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "perf", "--size", "2", "--iter", "3", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "Operators: 4")
	assert.Regexp(t, `full\s+2 terms`, out)
	assert.Regexp(t, `general\s+7 terms`, out)
	assert.Contains(t, out, "computations: 3")

	_, _, err = execute(t, "perf", "--size", "0")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wick dev")
}
