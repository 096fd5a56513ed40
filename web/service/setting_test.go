package service

import (
	"errors"
	"testing"

	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/storage"
	"cms-ui/util/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRoundTrip(t *testing.T) {
	setupTest(t)
	settingService := &SettingService{}

	require.NoError(t, settingService.WriteSettings(map[string]string{"siteName": "Acme"}))

	settings := settingService.ReadSettings()
	assert.Equal(t, "Acme", settings["siteName"])
	// Untouched keys come from the defaults.
	assert.Equal(t, "/", settings["webBasePath"])
}

func TestSettingsRoundTripWithPrimaryDown(t *testing.T) {
	setupTest(t)
	settingService := &SettingService{}

	closePrimary(t)
	require.NoError(t, settingService.WriteSettings(map[string]string{"siteName": "Acme"}))

	settings := settingService.ReadSettings()
	assert.Equal(t, "Acme", settings["siteName"])
}

func TestSettingsMergePrecedence(t *testing.T) {
	setupTest(t)
	settingService := &SettingService{}

	require.True(t, storage.File().TryWrite("siteName", "A"))
	require.NoError(t, database.GetDB().Create(&model.Setting{Key: "siteName", Value: "B"}).Error)

	assert.Equal(t, "B", settingService.ReadSettings()["siteName"])

	closePrimary(t)
	assert.Equal(t, "A", settingService.ReadSettings()["siteName"])
}

func TestSettingsValidation(t *testing.T) {
	setupTest(t)
	settingService := &SettingService{}

	var validationErr *common.ValidationError

	err := settingService.WriteSettings(map[string]string{"": "empty key"})
	assert.True(t, errors.As(err, &validationErr))

	err = settingService.WriteSettings(map[string]string{"doc:navigation": "reserved"})
	assert.True(t, errors.As(err, &validationErr))

	// A rejected payload writes nothing.
	assert.NotContains(t, settingService.ReadSettings(), "doc:navigation")
}

func TestSettingsTypedGetters(t *testing.T) {
	setupTest(t)
	settingService := &SettingService{}

	port, err := settingService.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 2095, port)

	require.NoError(t, settingService.WriteSettings(map[string]string{
		"webPort":     "8080",
		"webBasePath": "panel",
	}))

	port, err = settingService.GetPort()
	require.NoError(t, err)
	assert.Equal(t, 8080, port)
	assert.Equal(t, "/panel/", settingService.GetBasePath())

	assert.False(t, settingService.IsMaintenanceMode())
	settingService.SetMaintenanceMode(true)
	assert.True(t, settingService.IsMaintenanceMode())
}

func TestGetTimeLocation(t *testing.T) {
	setupTest(t)
	settingService := &SettingService{}

	location, err := settingService.GetTimeLocation()
	require.NoError(t, err)
	assert.Equal(t, "UTC", location.String())

	require.NoError(t, settingService.WriteSettings(map[string]string{"timeLocation": "Not/AZone"}))
	_, err = settingService.GetTimeLocation()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not/AZone")
}
