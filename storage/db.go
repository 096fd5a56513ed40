package storage

import (
	"cms-ui/database"
	"cms-ui/database/model"
	"cms-ui/logger"
)

// docKeyPrefix namespaces document rows in the settings table so they
// never collide with scalar keys.
const docKeyPrefix = "doc:"

// DBTier is the primary tier backed by the settings table in the
// relational store. Any query or commit error reads as unreachable.
type DBTier struct{}

func NewDBTier() *DBTier {
	return &DBTier{}
}

func (t *DBTier) Name() string {
	return "primary"
}

func (t *DBTier) TryRead(key string) (string, bool) {
	db := database.GetDB()
	if db == nil {
		return "", false
	}
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Debug("primary tier read failed:", err)
		}
		return "", false
	}
	return setting.Value, true
}

func (t *DBTier) TryReadAll() (map[string]string, bool) {
	db := database.GetDB()
	if db == nil {
		return nil, false
	}
	settings := make([]*model.Setting, 0)
	err := db.Model(model.Setting{}).Where("key NOT LIKE ?", docKeyPrefix+"%").Find(&settings).Error
	if err != nil {
		logger.Debug("primary tier read-all failed:", err)
		return nil, false
	}
	all := make(map[string]string, len(settings))
	for _, setting := range settings {
		all[setting.Key] = setting.Value
	}
	return all, true
}

func (t *DBTier) TryWrite(key string, value string) bool {
	db := database.GetDB()
	if db == nil {
		return false
	}
	setting := &model.Setting{}
	err := db.Model(model.Setting{}).Where("key = ?", key).First(setting).Error
	if database.IsNotFound(err) {
		err = db.Create(&model.Setting{Key: key, Value: value}).Error
	} else if err == nil {
		setting.Value = value
		err = db.Save(setting).Error
	}
	if err != nil {
		logger.Debug("primary tier write failed:", err)
		return false
	}
	return true
}

func (t *DBTier) TryReadDoc(name string) ([]byte, bool) {
	value, ok := t.TryRead(docKeyPrefix + name)
	if !ok || value == "" {
		return nil, false
	}
	return []byte(value), true
}

func (t *DBTier) TryWriteDoc(name string, data []byte) bool {
	return t.TryWrite(docKeyPrefix+name, string(data))
}
