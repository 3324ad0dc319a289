package cli

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javerbukh/jwebbinar-prep/internal/logger"
	"github.com/javerbukh/jwebbinar-prep/report"
)

var (
	yamlTarget = filepath.Join("..", "config", "testdata", "ngc4151.yaml")
	tomlTarget = filepath.Join("..", "config", "testdata", "ngc4151.toml")
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd, opts := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := execute(cmd, opts)

	return out.String(), errOut.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvTarget, "")
	t.Setenv(EnvStore, "")
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvLog, "")
}

func TestDerivePretty(t *testing.T) {
	clearEnv(t)

	out, _, err := run(t, "derive", "-f", yamlTarget)
	require.NoError(t, err)

	for _, want := range []string{"NGC 4151", "black_hole_mass", "enclosed_mass", "density", "Msun / pc3", "note: "} {
		assert.Contains(t, out, want)
	}
}

func TestDeriveJSONFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTarget, tomlTarget)

	out, _, err := run(t, "derive", "--format", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))

	v, ok := rep.Lookup(report.SectionRotation, "radius")
	require.True(t, ok)
	assert.InEpsilon(t, 32.24010979378414, v.Value, 1e-9)
	assert.Equal(t, "pc", v.Unit)
	require.NotNil(t, rep.Profile)
}

func TestDeriveCBOR(t *testing.T) {
	clearEnv(t)

	out, _, err := run(t, "derive", "-f", yamlTarget, "--format", "cbor")
	require.NoError(t, err)

	rep, err := report.ReadCBOR([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "NGC 4151", rep.Target)
}

func TestDeriveSaveHistoryShow(t *testing.T) {
	clearEnv(t)

	store := filepath.Join(t.TempDir(), "runs.db")

	_, errOut, err := run(t, "--store", store, "derive", "-f", yamlTarget, "--save")
	require.NoError(t, err)

	m := regexp.MustCompile(`saved run ([0-9a-f-]{36})`).FindStringSubmatch(errOut)
	require.Len(t, m, 2, errOut)
	id := m[1]

	hist, _, err := run(t, "--store", store, "history")
	require.NoError(t, err)
	assert.Contains(t, hist, id)
	assert.Contains(t, hist, "NGC 4151")

	shown, _, err := run(t, "--store", store, "show", id, "--format", "json")
	require.NoError(t, err)

	var rep report.Report
	require.NoError(t, json.Unmarshal([]byte(shown), &rep))
	_, ok := rep.Lookup(report.SectionDispersion, "sigma")
	assert.True(t, ok)

	_, _, err = run(t, "--store", store, "show", "00000000-0000-0000-0000-000000000000")
	assert.Error(t, err)
}

func TestHistoryShortDigest(t *testing.T) {
	clearEnv(t)

	store := filepath.Join(t.TempDir(), "runs.db")

	_, _, err := run(t, "--store", store, "derive", "-f", yamlTarget, "--save")
	require.NoError(t, err)

	db, err := sql.Open("sqlite3", "file:"+store)
	require.NoError(t, err)

	_, err = db.Exec(`UPDATE runs SET digest = 'abc'`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	hist, _, err := run(t, "--store", store, "history")
	require.NoError(t, err)
	assert.Contains(t, hist, "abc")

	assert.Equal(t, "", shortDigest(""))
	assert.Equal(t, "abc", shortDigest("abc"))
	assert.Equal(t, "0123456789ab", shortDigest("0123456789abcdef"))
}

func TestLogFileReleasedOnFailure(t *testing.T) {
	clearEnv(t)

	logPath := filepath.Join(t.TempDir(), "logs", "ifuderive.log")

	_, _, err := run(t, "--log-file", logPath, "derive", "-f", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	logger.L().Info("after release")

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "after release")
}

func TestDebugLogging(t *testing.T) {
	clearEnv(t)

	_, errOut, err := run(t, "--debug", "derive", "-f", yamlTarget)
	require.NoError(t, err)
	assert.Contains(t, errOut, "velocity dispersion")
	assert.Contains(t, errOut, `target="NGC 4151"`)
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	out, _, err := run(t, "validate", "-f", tomlTarget)
	require.NoError(t, err)
	assert.Equal(t, "OK NGC 4151: 3 measurements\n", out)

	_, _, err = run(t, "validate")
	assert.ErrorIs(t, err, errNoTarget)

	_, _, err = run(t, "validate", "-f", filepath.Join("..", "config", "testdata", "invalid_unit.yaml"))
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		args []string
		want string
	}{
		{[]string{"convert", "4861", "Angstrom", "um"}, "0.4861 um"},
		{[]string{"convert", "4.862", "um", "km/s", "--doppler-rest", "4.861 um"}, "61.6667 km/s"},
		{[]string{"convert", "0.5", "arcsec", "pc", "--distance", "13.3 Mpc"}, "32.2401 pc"},
		{[]string{"convert", "1", "GHz", "um"}, "299792 um"},
	}

	for _, tc := range cases {
		t.Run(strings.Join(tc.args[1:], " "), func(t *testing.T) {
			out, _, err := run(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, strings.TrimSpace(out))
		})
	}
}

func TestConvertErrors(t *testing.T) {
	clearEnv(t)

	for _, args := range [][]string{
		{"convert", "4.862", "um", "km/s"},
		{"convert", "x", "um", "nm"},
		{"convert", "1", "furlong", "um"},
		{"convert", "4.862", "um", "km/s", "--doppler-rest", "4.861"},
		{"convert", "4.862", "um", "km/s", "--doppler-rest", "4.861 um", "--doppler-convention", "weird"},
	} {
		_, _, err := run(t, args...)
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func TestParseQuantity(t *testing.T) {
	q, err := parseQuantity("13.3 Mpc")
	require.NoError(t, err)
	assert.InDelta(t, 13.3, q.Value, 0)
	assert.Equal(t, "Mpc", q.Unit.Symbol())

	q, err = parseQuantity("1 Msun / pc3")
	require.NoError(t, err)
	assert.Equal(t, 1.0, q.Value)
}
