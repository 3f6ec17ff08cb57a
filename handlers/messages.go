package handlers

// User-facing flash messages, in the user's language.
const (
	msgBadTickerFormat = "錯誤的股票代碼格式，上市股票須加.TW、上櫃股票須加.TWO"
	msgBadDateFormat   = "錯誤的日期格式，請依照yyyy-mm-dd格式輸入日期"
	msgBadDateRange    = "起始日期必須小於結束日期，請重新輸入"
	msgTickerNotFound  = "查無此股票代碼，請確認後再輸入"
)
