package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fullWarehouse() Warehouse {
	return Warehouse{
		Account:   "acct",
		User:      "user",
		Password:  "pw",
		Role:      "role",
		Warehouse: "wh",
		Database:  "db",
		Schema:    "sch",
	}
}

func TestWarehouseValidate(t *testing.T) {
	require.NoError(t, fullWarehouse().Validate())
}

func TestWarehouseValidate_EachFieldRequired(t *testing.T) {
	clear := []struct {
		name string
		mut  func(*Warehouse)
	}{
		{"SNOWFLAKE_ACCOUNT", func(w *Warehouse) { w.Account = "" }},
		{"SNOWFLAKE_USER", func(w *Warehouse) { w.User = "" }},
		{"SNOWFLAKE_PASSWORD", func(w *Warehouse) { w.Password = "" }},
		{"SNOWFLAKE_ROLE", func(w *Warehouse) { w.Role = "" }},
		{"SNOWFLAKE_WAREHOUSE", func(w *Warehouse) { w.Warehouse = "" }},
		{"SNOWFLAKE_DATABASE", func(w *Warehouse) { w.Database = "" }},
		{"SNOWFLAKE_SCHEMA", func(w *Warehouse) { w.Schema = "" }},
	}
	for _, tc := range clear {
		w := fullWarehouse()
		tc.mut(&w)
		err := w.Validate()
		require.Error(t, err, tc.name)
		require.Contains(t, err.Error(), tc.name)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SNOWFLAKE_ACCOUNT", "my-acct")
	t.Setenv("SNOWFLAKE_USER", "my-user")
	t.Setenv("AVALANCHE_CHAT_PROVIDER", "placeholder")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "my-acct", cfg.Warehouse.Account)
	require.Equal(t, "my-user", cfg.Warehouse.User)
	require.Equal(t, "placeholder", cfg.Chat.Provider)
}
