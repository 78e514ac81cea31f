package integration

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBookManagement 图书管理(馆员)
//
// 测试场景:
// 1. 馆员上架图书，二手价默认新书价的70%
// 2. 读者无权上架
// 3. 编辑图书(零值字段保持原值)
// 4. 公开检索
func TestBookManagement(t *testing.T) {
	RequireServer(t)

	_, librarianToken := RegisterTestUser(t, "bib", "librarian")

	t.Run("上架图书且二手价默认七折", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":     "Il Gattopardo",
			"author":    "Tomasi di Lampedusa",
			"genre":     "Romanzo",
			"year":      1958,
			"pages":     320,
			"price_new": 1500,
		}, librarianToken)
		require.Equal(t, 0, resp.Code, "上架失败: %s", resp.Message)

		var book BookData
		require.NoError(t, json.Unmarshal(resp.Data, &book))
		assert.NotZero(t, book.ID)
		assert.Equal(t, int64(1500), book.PriceNew)
		assert.Equal(t, int64(1050), book.PriceUsed, "二手价应默认为新书价的70%")

		t.Logf("✓ 上架成功，图书ID: %d", book.ID)
	})

	t.Run("读者无权上架", func(t *testing.T) {
		_, memberToken := RegisterTestUser(t, "lettore", "member")

		resp := PostJSON(t, BaseURL+"/books", map[string]interface{}{
			"title":     "Libro Vietato",
			"author":    "Nessuno",
			"genre":     "Romanzo",
			"pages":     100,
			"price_new": 1000,
		}, memberToken)
		assert.NotEqual(t, 0, resp.Code, "读者上架应该被拒绝")

		t.Logf("✓ 权限正确拦截: %s", resp.Message)
	})

	t.Run("编辑图书零值字段保持原值", func(t *testing.T) {
		bookID := AddTestBook(t, librarianToken, "Da Modificare")

		resp := PutJSON(t, BaseURL+"/books/"+itoa(bookID), map[string]interface{}{
			"genre": "Classico",
		}, librarianToken)
		require.Equal(t, 0, resp.Code, "编辑失败: %s", resp.Message)

		getResp := GetJSON(t, BaseURL+"/books/"+itoa(bookID), "")
		require.Equal(t, 0, getResp.Code)

		var book BookData
		require.NoError(t, json.Unmarshal(getResp.Data, &book))
		assert.Equal(t, "Da Modificare", book.Title, "未传字段应保持原值")
		assert.Equal(t, "Classico", book.Genre)
	})

	t.Run("公开的列表与检索接口无需登录", func(t *testing.T) {
		AddTestBook(t, librarianToken, "Ricercabile Unico")

		listResp := GetJSON(t, BaseURL+"/books?page=1&page_size=5", "")
		require.Equal(t, 0, listResp.Code, "列表查询失败: %s", listResp.Message)

		var list BookListData
		require.NoError(t, json.Unmarshal(listResp.Data, &list))
		assert.NotEmpty(t, list.List)
		assert.LessOrEqual(t, len(list.List), 5)

		searchResp := GetJSON(t, BaseURL+"/books/search?title=Ricercabile", "")
		assert.Equal(t, 0, searchResp.Code, "标题检索失败: %s", searchResp.Message)

		t.Logf("✓ 公开检索通过，共%d本", list.Total)
	})

	t.Run("删除后查询返回不存在", func(t *testing.T) {
		bookID := AddTestBook(t, librarianToken, "Da Rimuovere")

		delResp := DeleteJSON(t, BaseURL+"/books/"+itoa(bookID), librarianToken)
		require.Equal(t, 0, delResp.Code, "删除失败: %s", delResp.Message)

		getResp := GetJSON(t, BaseURL+"/books/"+itoa(bookID), "")
		assert.NotEqual(t, 0, getResp.Code, "已删除图书应该查不到")
	})
}

// TestLoanFlow 借阅流转:预约、借出、排队、归还晋升
func TestLoanFlow(t *testing.T) {
	RequireServer(t)

	_, librarianToken := RegisterTestUser(t, "banco", "librarian")

	t.Run("预约后他人不能再预约", func(t *testing.T) {
		bookID := AddTestBook(t, librarianToken, "Prenotabile")
		_, tokenA := RegisterTestUser(t, "lettore_a", "member")
		_, tokenB := RegisterTestUser(t, "lettore_b", "member")

		respA := PostJSON(t, BaseURL+"/books/"+itoa(bookID)+"/reserve", nil, tokenA)
		require.Equal(t, 0, respA.Code, "预约失败: %s", respA.Message)

		respB := PostJSON(t, BaseURL+"/books/"+itoa(bookID)+"/reserve", nil, tokenB)
		assert.NotEqual(t, 0, respB.Code, "已被预约的书不能再预约")

		t.Logf("✓ 预约互斥: %s", respB.Message)
	})

	t.Run("借出后可排队且归还晋升队首", func(t *testing.T) {
		bookID := AddTestBook(t, librarianToken, "In Prestito")
		_, waiterToken := RegisterTestUser(t, "in_coda", "member")

		// 馆员柜台借出
		borrowResp := PostJSON(t, BaseURL+"/loans/books/"+itoa(bookID)+"/borrow", nil, librarianToken)
		require.Equal(t, 0, borrowResp.Code, "借出失败: %s", borrowResp.Message)

		// 可借清单空了，不能预约只能排队
		reserveResp := PostJSON(t, BaseURL+"/books/"+itoa(bookID)+"/reserve", nil, waiterToken)
		assert.NotEqual(t, 0, reserveResp.Code, "借出中的书不能预约")

		waitResp := PostJSON(t, BaseURL+"/books/"+itoa(bookID)+"/waitlist", nil, waiterToken)
		require.Equal(t, 0, waitResp.Code, "排队失败: %s", waitResp.Message)

		// 归还触发队首晋升
		returnResp := PostJSON(t, BaseURL+"/loans/books/"+itoa(bookID)+"/return", nil, librarianToken)
		require.Equal(t, 0, returnResp.Code, "归还失败: %s", returnResp.Message)

		// 晋升者名下出现预约，且收到站内通知
		mineResp := GetJSON(t, BaseURL+"/loans/mine", waiterToken)
		require.Equal(t, 0, mineResp.Code)
		assert.Contains(t, string(mineResp.Data), itoa(bookID), "晋升者的借阅视图应包含该书")

		countResp := GetJSON(t, BaseURL+"/notifications/count", waiterToken)
		require.Equal(t, 0, countResp.Code)

		var count map[string]int64
		require.NoError(t, json.Unmarshal(countResp.Data, &count))
		assert.Positive(t, count["count"], "晋升后应收到站内通知")

		t.Logf("✓ 归还晋升完成，未读通知: %d", count["count"])
	})

	t.Run("可借图书不能排队", func(t *testing.T) {
		bookID := AddTestBook(t, librarianToken, "Disponibile")
		_, token := RegisterTestUser(t, "impaziente", "member")

		resp := PostJSON(t, BaseURL+"/books/"+itoa(bookID)+"/waitlist", nil, token)
		assert.NotEqual(t, 0, resp.Code, "可借的书应该直接预约而非排队")
	})
}

// TestConcurrentReserve 两个读者同时预约同一本书，数据库守卫保证只有一人成功
func TestConcurrentReserve(t *testing.T) {
	RequireServer(t)

	_, librarianToken := RegisterTestUser(t, "banco_gara", "librarian")
	bookID := AddTestBook(t, librarianToken, "Conteso")

	_, tokenA := RegisterTestUser(t, "rivale_a", "member")
	_, tokenB := RegisterTestUser(t, "rivale_b", "member")

	results := make(chan *Response, 2)
	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, token := range []string{tokenA, tokenB} {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()
			resp, err := PostJSONResult(BaseURL+"/books/"+itoa(bookID)+"/reserve", nil, token)
			if err != nil {
				errs <- err
				return
			}
			results <- resp
		}(token)
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err, "并发预约请求失败")
	}

	succeeded := 0
	for resp := range results {
		if resp.Code == 0 {
			succeeded++
		}
	}
	assert.Equal(t, 1, succeeded, "并发预约应恰好一人成功")

	t.Logf("✓ 并发预约互斥，成功数: %d", succeeded)
}
