package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/detached-state-go/cmd/snapshotctl/internal/settings"
	"github.com/AntonStoeckl/detached-state-go/optional"
)

func writeSettingsFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), settings.DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func envOf(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func Test_Resolve_DefaultsOnly(t *testing.T) {
	t.Parallel()

	s, err := settings.Resolve(settings.Defaults())

	require.NoError(t, err)
	require.Equal(t, settings.Settings{
		DSN:       settings.DefaultDSN,
		Adapter:   settings.AdapterPGXPool,
		TableName: settings.DefaultTableName,
		LogLevel:  settings.DefaultLogLevel,
	}, s)
}

func Test_Resolve_Precedence(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "dsn: postgres://file\nadapter: sql.db\ntable_name: file_snapshots\n")
	fileLayer, err := settings.FromFile(path, true)
	require.NoError(t, err)

	envLayer := settings.FromEnv(envOf(map[string]string{
		settings.EnvDSN: "postgres://env",
	}))

	flagLayer := settings.Layer{Adapter: optional.Some(settings.AdapterSQLXDB)}

	s, err := settings.Resolve(settings.Defaults(), fileLayer, envLayer, flagLayer)

	require.NoError(t, err)
	require.Equal(t, "postgres://env", s.DSN)
	require.Equal(t, settings.AdapterSQLXDB, s.Adapter)
	require.Equal(t, "file_snapshots", s.TableName)
	require.Equal(t, settings.DefaultLogLevel, s.LogLevel)
}

func Test_Resolve_AbsentValuesKeepLowerLayers(t *testing.T) {
	t.Parallel()

	s, err := settings.Resolve(settings.Defaults(), settings.Layer{}, settings.FromEnv(envOf(nil)))

	require.NoError(t, err)
	require.Equal(t, settings.DefaultDSN, s.DSN)
	require.Equal(t, settings.DefaultTableName, s.TableName)
}

func Test_FromEnv_EmptyVariableIsAbsent(t *testing.T) {
	t.Parallel()

	layer := settings.FromEnv(envOf(map[string]string{settings.EnvDSN: ""}))

	require.False(t, layer.DSN.IsPresent())
	require.False(t, layer.Adapter.IsPresent())
}

func Test_FromFile_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.yaml")

	layer, err := settings.FromFile(missing, false)
	require.NoError(t, err)
	require.Equal(t, settings.Layer{}, layer)

	_, err = settings.FromFile(missing, true)
	require.ErrorIs(t, err, settings.ErrReadingSettingsFailed)
}

func Test_FromFile_InvalidYAML(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "dsn: [unterminated\n")

	_, err := settings.FromFile(path, true)

	require.ErrorIs(t, err, settings.ErrReadingSettingsFailed)
}

func Test_FromFile_ExplicitEmptyValueIsPresent(t *testing.T) {
	t.Parallel()

	path := writeSettingsFile(t, "table_name: \"\"\n")
	layer, err := settings.FromFile(path, true)
	require.NoError(t, err)

	_, err = settings.Resolve(settings.Defaults(), layer)

	require.ErrorIs(t, err, settings.ErrEmptyTableName)
}

func Test_Validate(t *testing.T) {
	t.Parallel()

	valid := settings.Settings{DSN: "postgres://x", Adapter: settings.AdapterSQLDB, TableName: "t", LogLevel: "info"}

	cases := map[string]struct {
		mutate func(*settings.Settings)
		want   error
	}{
		"valid":            {mutate: func(*settings.Settings) {}, want: nil},
		"empty dsn":        {mutate: func(s *settings.Settings) { s.DSN = "" }, want: settings.ErrEmptyDSN},
		"unknown adapter":  {mutate: func(s *settings.Settings) { s.Adapter = "mysql" }, want: settings.ErrUnsupportedAdapter},
		"empty table name": {mutate: func(s *settings.Settings) { s.TableName = "" }, want: settings.ErrEmptyTableName},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := valid
			tc.mutate(&s)

			err := settings.Validate(s)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, tc.want)
		})
	}
}
