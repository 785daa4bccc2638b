package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OwnerKind 归属类型
type OwnerKind uint8

const (
	// OwnerSystem 系统内置，无归属用户
	OwnerSystem OwnerKind = iota
	// OwnerUser 归属于某个用户
	OwnerUser
)

// Owner 记录归属：System 或 User(id)
// 持久化为可空列，NULL 表示 System。零值即 System。
type Owner struct {
	kind   OwnerKind
	userID string
}

// SystemOwner 系统归属
func SystemOwner() Owner {
	return Owner{kind: OwnerSystem}
}

// UserOwner 用户归属，空 id 视为系统归属
func UserOwner(userID string) Owner {
	if userID == "" {
		return SystemOwner()
	}
	return Owner{kind: OwnerUser, userID: userID}
}

// Kind 返回归属类型
func (o Owner) Kind() OwnerKind {
	return o.kind
}

// UserID 返回归属用户 ID，系统归属时 ok=false
func (o Owner) UserID() (string, bool) {
	if o.kind != OwnerUser {
		return "", false
	}
	return o.userID, true
}

// IsSystem 是否系统归属
func (o Owner) IsSystem() bool {
	return o.kind == OwnerSystem
}

// Value 实现 driver.Valuer
func (o Owner) Value() (driver.Value, error) {
	if o.kind == OwnerSystem {
		return nil, nil
	}
	return o.userID, nil
}

// Scan 实现 sql.Scanner
func (o *Owner) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*o = SystemOwner()
	case string:
		*o = UserOwner(v)
	case []byte:
		*o = UserOwner(string(v))
	default:
		return fmt.Errorf("无法解析归属字段: %T", value)
	}
	return nil
}

// MarshalJSON 系统归属输出 null
func (o Owner) MarshalJSON() ([]byte, error) {
	if o.kind == OwnerSystem {
		return []byte("null"), nil
	}
	return json.Marshal(o.userID)
}

// UnmarshalJSON 与 MarshalJSON 对称
func (o *Owner) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = SystemOwner()
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*o = UserOwner(id)
	return nil
}
