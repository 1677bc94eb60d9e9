package db

import (
	"errors"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Snapshot 以命名空间化的键存储一份 JSON 序列化的领域快照。
type Snapshot struct {
	Key   string `gorm:"primaryKey;size:100"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (Snapshot) TableName() string {
	return "snapshots"
}

// Store 实现仓库依赖的键值契约：get 返回字符串或缺失，
// set 尽力而为——写失败只记日志不上抛，内存状态在会话内保持权威。
// 进程退出前未落盘的变更会丢失，这是既有设计接受的风险。
type Store struct {
	db *gorm.DB
}

// NewStore 构造快照存储。
func NewStore(gdb *gorm.DB) *Store {
	return &Store{db: gdb}
}

// Get 读取键对应的快照，缺失时返回 false。
func (s *Store) Get(key string) (string, bool) {
	var snap Snapshot
	if err := s.db.First(&snap, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("snapshot: read %q failed: %v", key, err)
		}
		return "", false
	}
	return snap.Value, true
}

// Set 插入或覆盖键对应的快照。
func (s *Store) Set(key, value string) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Snapshot{Key: key, Value: value}).Error
	if err != nil {
		log.Printf("snapshot: write %q failed: %v", key, err)
	}
}
