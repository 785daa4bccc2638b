package service

import (
	"testing"

	"zenith/models"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		owner     models.Owner
		requester string
		policy    Policy
		op        Operation
		want      Decision
	}{
		{"owned read by owner", models.UserOwner("u1"), "u1", PolicyOwned, OpRead, Allow},
		{"owned mutate by owner", models.UserOwner("u1"), "u1", PolicyOwned, OpMutate, Allow},
		{"owned read by other", models.UserOwner("u1"), "u2", PolicyOwned, OpRead, Deny},
		{"owned mutate by other", models.UserOwner("u1"), "u2", PolicyOwned, OpMutate, Deny},
		{"owned without owner", models.SystemOwner(), "u1", PolicyOwned, OpRead, Deny},
		{"anonymous requester", models.UserOwner("u1"), "", PolicyOwned, OpRead, Deny},
		{"shared system read", models.SystemOwner(), "u1", PolicyShared, OpRead, Allow},
		{"shared system mutate", models.SystemOwner(), "u1", PolicyShared, OpMutate, SystemProtected},
		{"shared private read by owner", models.UserOwner("u1"), "u1", PolicyShared, OpRead, Allow},
		{"shared private mutate by owner", models.UserOwner("u1"), "u1", PolicyShared, OpMutate, Allow},
		{"shared private read by other", models.UserOwner("u1"), "u2", PolicyShared, OpRead, Deny},
		{"shared private mutate by other", models.UserOwner("u1"), "u2", PolicyShared, OpMutate, Deny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Check(tt.owner, tt.requester, tt.policy, tt.op))
		})
	}
}

func TestAuthorize(t *testing.T) {
	assert.NoError(t, authorize(models.UserOwner("u1"), "u1", PolicyOwned, OpMutate, ResourceProject, "修改"))

	err := authorize(models.SystemOwner(), "u1", PolicyShared, OpMutate, ResourceAIModel, "删除")
	var fe *ForbiddenError
	if assert.ErrorAs(t, err, &fe) {
		assert.True(t, fe.System)
		assert.Equal(t, "系统内置AI模型不可删除", fe.Error())
	}

	err = authorize(models.UserOwner("u1"), "u2", PolicyOwned, OpRead, ResourcePrompt, "访问")
	if assert.ErrorAs(t, err, &fe) {
		assert.False(t, fe.System)
		assert.Equal(t, "无权访问该提示词", fe.Error())
	}
}

func TestDecision_String(t *testing.T) {
	assert.Equal(t, "ALLOW", Allow.String())
	assert.Equal(t, "DENY", Deny.String())
	assert.Equal(t, "SYSTEM_PROTECTED", SystemProtected.String())
}
