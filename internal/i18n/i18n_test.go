package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedLocalesLoad(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, []string{"en", "zh_TW"}, GetSupportedLanguages())
	assert.Equal(t, "Welcome to SustainChain Navigator API.", T("en", KeyWelcome))
	assert.Equal(t, "Supplier not found", T("en", KeyResourceNotFound, "Supplier"))
}

func TestFallbacks(t *testing.T) {
	require.NoError(t, Initialize())

	assert.Equal(t, T("en", KeyAuthRequired), T("fr", KeyAuthRequired))
	assert.Equal(t, "missing.key", T("en", "missing.key"))
	assert.NotEqual(t, T("en", KeyAuthRequired), T("zh_TW", KeyAuthRequired))
}

func TestEveryKeyTranslated(t *testing.T) {
	require.NoError(t, Initialize())

	keys := []string{
		KeyWelcome, KeyNotFound, KeyInternalError, KeyRateLimited, KeyConflict,
		KeyAuthRequired, KeyAuthInvalidToken, KeyAuthForbidden, KeyAuthInvalidCredentials,
		KeyAuthUserNotFound, KeyAuthUserInactive, KeyAuthUserExists, KeyAuthAdminRequired,
		KeyAuthAnalystRequired, KeyAuthSupplierRequired, KeyAuthSignupSuccess, KeyFileUploaded, KeyResourceNotFound, KeyResourceDeleted,
		KeyResourceInvalidRef, KeyResourceInvalidInput, KeySurveySubmitted, KeySupplyChainImported,
		KeySatelliteGenerated, KeyAdminSettingsUpdated, KeyNotificationRead, KeySeedCompleted,
		KeySeedReset, KeySeedExists, KeyValidationInvalid,
	}
	for _, lang := range GetSupportedLanguages() {
		for _, key := range keys {
			_, ok := instance.lookup(lang, key)
			assert.True(t, ok, "%s missing %s", lang, key)
		}
	}
}

func TestLoadTranslationsRejectsBadJSON(t *testing.T) {
	fsys := fstest.MapFS{"locales/en.json": {Data: []byte("{")}}
	i := &I18n{translations: map[string]map[string]string{}, defaultLang: "en"}
	assert.Error(t, i.LoadTranslations(fsys, "locales"))
}
