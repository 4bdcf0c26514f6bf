package model

type Role string

// ログインするのは管理者だけ。購入者はカートセッションで識別
const RoleAdmin Role = "ADMIN"
