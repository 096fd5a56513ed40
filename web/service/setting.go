package service

import (
	"strconv"
	"strings"
	"time"

	"cms-ui/storage"
	"cms-ui/util/common"
)

var defaultValueMap = map[string]string{
	"siteName":        "cms-ui",
	"siteDescription": "",
	"siteKeywords":    "",
	"footerText":      "",
	"webListen":       "",
	"webDomain":       "",
	"webPort":         "2095",
	"webCertFile":     "",
	"webKeyFile":      "",
	"webBasePath":     "/",
	"sessionMaxAge":   "10080",
	"pageSize":        "20",
	"postsPerPage":    "10",
	"timeLocation":    "UTC",
	"maintenanceMode": "false",
}

// SettingService reads and writes site configuration through the
// layered store: merged reads survive a primary store outage and
// writes cascade through every tier.
type SettingService struct{}

// ReadSettings returns the merged settings map: defaults overlaid by
// the file, memory and primary tiers in that order.
func (s *SettingService) ReadSettings() map[string]string {
	return storage.Settings().ReadAll(defaultValueMap)
}

// WriteSettings writes every pair through the tiers. Keys must be
// non-empty and must not touch the reserved document namespace; a bad
// key rejects the whole payload.
func (s *SettingService) WriteSettings(values map[string]string) error {
	for key := range values {
		if strings.TrimSpace(key) == "" {
			return common.NewValidationErrorf("settings key can not be empty")
		}
		if strings.HasPrefix(key, "doc:") {
			return common.NewValidationErrorf("settings key %q is reserved", key)
		}
	}
	for key, value := range values {
		storage.Settings().Write(key, value)
	}
	return nil
}

func (s *SettingService) getString(key string) string {
	return storage.Settings().Read(key, defaultValueMap[key])
}

func (s *SettingService) setString(key string, value string) {
	storage.Settings().Write(key, value)
}

func (s *SettingService) getBool(key string) (bool, error) {
	return strconv.ParseBool(s.getString(key))
}

func (s *SettingService) getInt(key string) (int, error) {
	return strconv.Atoi(s.getString(key))
}

func (s *SettingService) GetSiteName() string {
	return s.getString("siteName")
}

func (s *SettingService) GetListen() string {
	return s.getString("webListen")
}

func (s *SettingService) GetWebDomain() string {
	return s.getString("webDomain")
}

func (s *SettingService) GetPort() (int, error) {
	return s.getInt("webPort")
}

func (s *SettingService) GetCertFile() string {
	return s.getString("webCertFile")
}

func (s *SettingService) GetKeyFile() string {
	return s.getString("webKeyFile")
}

// GetBasePath returns the base path with leading and trailing slashes
// enforced.
func (s *SettingService) GetBasePath() string {
	basePath := s.getString("webBasePath")
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}
	return basePath
}

// GetSessionMaxAge returns the cookie max age hint in minutes.
func (s *SettingService) GetSessionMaxAge() (int, error) {
	return s.getInt("sessionMaxAge")
}

func (s *SettingService) GetPageSize() (int, error) {
	return s.getInt("pageSize")
}

func (s *SettingService) IsMaintenanceMode() bool {
	mode, err := s.getBool("maintenanceMode")
	if err != nil {
		return false
	}
	return mode
}

func (s *SettingService) SetMaintenanceMode(on bool) {
	s.setString("maintenanceMode", strconv.FormatBool(on))
}

func (s *SettingService) GetTimeLocation() (*time.Location, error) {
	name := s.getString("timeLocation")
	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, common.NewErrorf("invalid time location %q: %v", name, err)
	}
	return location, nil
}
