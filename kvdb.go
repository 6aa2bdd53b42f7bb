package main

import (
	"encoding/json"

	bolt "go.etcd.io/bbolt"
)

// Only settings are stored. Conversations live in memory for the lifetime of the
// process.
const (
	providerSettingsBucket = "providerSettings"
	modelSettingsBucket    = "modelSettings"

	modelSettingKey = "convo"
)

func initKVDB(db *bolt.DB) error {
	return db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(providerSettingsBucket))
		if err != nil {
			return err
		}
		_, err = tx.CreateBucketIfNotExists([]byte(modelSettingsBucket))
		if err != nil {
			return err
		}

		return nil
	})
}

// loadProviderSettings decodes the saved settings of a provider into v. v is left
// untouched when nothing was saved.
func loadProviderSettings(db *bolt.DB, name string, v any) error {
	return db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(providerSettingsBucket))

		data := b.Get([]byte(name))
		if data == nil {
			return nil
		}

		return json.Unmarshal(data, v)
	})
}

func saveProviderSettings(db *bolt.DB, name string, v any) error {
	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(providerSettingsBucket))

		data, err := json.Marshal(v)
		if err != nil {
			return err
		}

		return b.Put([]byte(name), data)
	})
}

// loadModelSetting returns the saved model setting, or fallback when none was saved.
func loadModelSetting(db *bolt.DB, fallback modelSetting) (modelSetting, error) {
	setting := fallback

	err := db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(modelSettingsBucket))

		data := b.Get([]byte(modelSettingKey))
		if data == nil {
			return nil
		}

		return json.Unmarshal(data, &setting)
	})

	return setting, err
}

func saveModelSetting(db *bolt.DB, setting modelSetting) error {
	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(modelSettingsBucket))

		data, err := json.Marshal(setting)
		if err != nil {
			return err
		}

		return b.Put([]byte(modelSettingKey), data)
	})
}
