package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserRegister 用户注册
//
// 测试场景:
// 1. 读者正常注册
// 2. 馆员注册(必须指定图书馆)
// 3. 重复邮箱/用户名
// 4. 参数校验(邮箱格式、密码强度)
func TestUserRegister(t *testing.T) {
	RequireServer(t)

	t.Run("读者正常注册", func(t *testing.T) {
		email := GenerateTestEmail("lettore")
		username := GenerateTestUsername("lettore")
		registerReq := map[string]interface{}{
			"email":    email,
			"username": username,
			"password": "Lettore123",
			"role":     "member",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		require.Equal(t, 0, resp.Code, "注册应该成功: %s", resp.Message)

		var data RegisterData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID)
		assert.Equal(t, email, data.Email)
		assert.Equal(t, "member", data.Role)

		t.Logf("✓ 注册成功，用户ID: %d", data.ID)
	})

	t.Run("馆员注册必须指定图书馆", func(t *testing.T) {
		registerReq := map[string]interface{}{
			"email":    GenerateTestEmail("bibliotecario"),
			"username": GenerateTestUsername("bibliotecario"),
			"password": "Lettore123",
			"role":     "librarian",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		assert.NotEqual(t, 0, resp.Code, "缺少从属单位应该失败")

		registerReq["affiliation_id"] = 1
		resp = PostJSON(t, BaseURL+"/users/register", registerReq, "")
		assert.Equal(t, 0, resp.Code, "指定图书馆后应该成功: %s", resp.Message)

		t.Logf("✓ 馆员从属校验通过")
	})

	t.Run("重复邮箱注册应失败", func(t *testing.T) {
		email := GenerateTestEmail("doppione")
		registerReq := map[string]interface{}{
			"email":    email,
			"username": GenerateTestUsername("doppione"),
			"password": "Lettore123",
		}

		resp1 := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		require.Equal(t, 0, resp1.Code, "第一次注册应该成功")

		registerReq["username"] = GenerateTestUsername("doppione2")
		resp2 := PostJSON(t, BaseURL+"/users/register", registerReq, "")

		assert.NotEqual(t, 0, resp2.Code, "重复邮箱注册应该失败")
		t.Logf("✓ 重复邮箱正确返回错误: %s", resp2.Message)
	})

	t.Run("密码强度校验", func(t *testing.T) {
		registerReq := map[string]interface{}{
			"email":    GenerateTestEmail("debole"),
			"username": GenerateTestUsername("debole"),
			"password": "soloparole", // 无数字
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		assert.NotEqual(t, 0, resp.Code, "弱密码应该失败")

		t.Logf("✓ 弱密码正确返回错误: %s", resp.Message)
	})

	t.Run("邮箱格式校验", func(t *testing.T) {
		registerReq := map[string]interface{}{
			"email":    "non-valida",
			"username": GenerateTestUsername("formato"),
			"password": "Lettore123",
		}

		resp := PostJSON(t, BaseURL+"/users/register", registerReq, "")
		assert.NotEqual(t, 0, resp.Code, "邮箱格式错误应该失败")
	})
}

// TestUserLogin 用户登录
//
// 测试场景:
// 1. 邮箱登录与用户名登录
// 2. 密码错误
// 3. Token访问受保护接口
// 4. 登出后Token失效
func TestUserLogin(t *testing.T) {
	RequireServer(t)

	email := GenerateTestEmail("accesso")
	username := GenerateTestUsername("accesso")
	password := "Lettore123"
	registerResp := PostJSON(t, BaseURL+"/users/register", map[string]interface{}{
		"email":    email,
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, 0, registerResp.Code, "准备测试数据:注册用户")

	t.Run("邮箱登录", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"identifier": email,
			"password":   password,
		}, "")
		require.Equal(t, 0, resp.Code, "登录应该成功: %s", resp.Message)

		var data LoginData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)

		assert.NotEmpty(t, data.AccessToken)
		assert.NotEmpty(t, data.RefreshToken)
		assert.Contains(t, data.AccessToken, ".", "JWT应该包含点号分隔符")

		t.Logf("✓ 邮箱登录成功")
	})

	t.Run("用户名登录", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"identifier": username,
			"password":   password,
		}, "")
		assert.Equal(t, 0, resp.Code, "用户名登录应该成功: %s", resp.Message)
	})

	t.Run("密码错误应失败", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
			"identifier": username,
			"password":   "Sbagliata1",
		}, "")
		assert.NotEqual(t, 0, resp.Code, "密码错误应该失败")

		t.Logf("✓ 密码错误正确返回: %s", resp.Message)
	})

	t.Run("Token可以访问受保护接口", func(t *testing.T) {
		_, token := RegisterTestUser(t, "protetto", "member")

		resp := GetJSON(t, BaseURL+"/notifications", token)
		assert.Equal(t, 0, resp.Code, "有效Token应该可以访问通知列表")
	})

	t.Run("无效Token应被拒绝", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/notifications", "invalid.jwt.token")
		assert.NotEqual(t, 0, resp.Code, "无效Token应该被拒绝")
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		_, token := RegisterTestUser(t, "uscita", "member")

		logoutResp := PostJSON(t, BaseURL+"/users/logout", nil, token)
		require.Equal(t, 0, logoutResp.Code, "登出应该成功: %s", logoutResp.Message)

		resp := GetJSON(t, BaseURL+"/notifications", token)
		assert.NotEqual(t, 0, resp.Code, "登出后的Token应该被拒绝")

		t.Logf("✓ 登出后Token正确失效")
	})
}

// TestUserProfile 个人资料:地址、支付方式、收藏
func TestUserProfile(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "profilo", "member")

	t.Run("首个地址自动成为默认", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/profile/addresses", map[string]interface{}{
			"recipient": "Mario Rossi",
			"street":    "Via Roma 1",
			"city":      "Torino",
			"post_code": "10121",
			"phone":     "3331234567",
		}, token)
		require.Equal(t, 0, resp.Code, "新增地址失败: %s", resp.Message)

		listResp := GetJSON(t, BaseURL+"/profile/addresses", token)
		require.Equal(t, 0, listResp.Code)

		var addrs []map[string]interface{}
		require.NoError(t, json.Unmarshal(listResp.Data, &addrs))
		require.Len(t, addrs, 1)
		assert.Equal(t, true, addrs[0]["is_default"])

		t.Logf("✓ 首个地址自动默认")
	})

	t.Run("支付方式卡号脱敏", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/profile/payments", map[string]interface{}{
			"kind":        "credit",
			"holder":      "Mario Rossi",
			"card_number": "4242 4242 4242 4242",
			"expires_at":  "09/28",
		}, token)
		require.Equal(t, 0, resp.Code, "新增支付方式失败: %s", resp.Message)

		var pm map[string]interface{}
		require.NoError(t, json.Unmarshal(resp.Data, &pm))
		assert.Equal(t, "**** **** **** 4242", pm["masked_number"])
		assert.NotContains(t, string(resp.Data), "4242 4242", "不应返回完整卡号")

		t.Logf("✓ 卡号已脱敏")
	})

	t.Run("最后一种支付方式不能删除", func(t *testing.T) {
		listResp := GetJSON(t, BaseURL+"/profile/payments", token)
		require.Equal(t, 0, listResp.Code)

		var methods []map[string]interface{}
		require.NoError(t, json.Unmarshal(listResp.Data, &methods))
		require.Len(t, methods, 1)

		id := uint(methods[0]["id"].(float64))
		resp := DeleteJSON(t, BaseURL+"/profile/payments/"+itoa(id), token)
		assert.NotEqual(t, 0, resp.Code, "最后一种支付方式应该不可删除")

		t.Logf("✓ 正确拦截: %s", resp.Message)
	})
}
