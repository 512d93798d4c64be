package services

import "errors"

// 業務錯誤，handlers以errors.Is對應至HTTP狀態碼
var (
	ErrInvalidQuantity   = errors.New("商品數量必須大於0")
	ErrMenuItemNotFound  = errors.New("查無此菜單品項")
	ErrEmptyCart         = errors.New("購物車內沒有商品")
	ErrOrderNotFound     = errors.New("查無此訂單")
	ErrPatchForbidden    = errors.New("沒有權限修改此欄位")
	ErrUnknownPatchField = errors.New("不允許修改的欄位")
	ErrInvalidStatus     = errors.New("不合法的訂單狀態")
	ErrUserNotFound      = errors.New("查無此使用者")
	ErrNotDeliveryCrew   = errors.New("指定的使用者不是外送員")
	ErrGroupNotFound     = errors.New("查無此群組")
)
