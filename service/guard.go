package service

import (
	"zenith/models"
)

// Decision 所有权校验结果
type Decision int

const (
	Allow Decision = iota
	Deny
	SystemProtected
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "ALLOW"
	case Deny:
		return "DENY"
	case SystemProtected:
		return "SYSTEM_PROTECTED"
	default:
		return "UNKNOWN"
	}
}

// Policy 资源的归属策略
type Policy int

const (
	// PolicyOwned 必须有归属用户（项目、提示词）
	PolicyOwned Policy = iota
	// PolicyShared 归属可选，无归属为系统共享资源（AI模型）
	PolicyShared
)

// Operation 访问类型
type Operation int

const (
	OpRead Operation = iota
	OpMutate
)

// Check 所有权校验，纯函数，无副作用
func Check(owner models.Owner, requester string, policy Policy, op Operation) Decision {
	switch owner.Kind() {
	case models.OwnerSystem:
		if policy == PolicyOwned {
			// 必须有归属的资源出现系统归属属于脏数据，一律拒绝
			return Deny
		}
		if op == OpRead {
			return Allow
		}
		return SystemProtected
	case models.OwnerUser:
		id, _ := owner.UserID()
		if requester != "" && id == requester {
			return Allow
		}
		return Deny
	default:
		return Deny
	}
}

// authorize 将校验结果转换为错误，action 用于错误信息（访问/修改/删除/使用）
func authorize(owner models.Owner, requester string, policy Policy, op Operation, resource, action string) error {
	switch Check(owner, requester, policy, op) {
	case Allow:
		return nil
	case SystemProtected:
		return &ForbiddenError{Resource: resource, Action: action, System: true}
	default:
		return &ForbiddenError{Resource: resource, Action: action}
	}
}
