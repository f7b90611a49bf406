package model

// DashboardOverview aggregates every admin dashboard widget.
type DashboardOverview struct {
	SalesStats   SalesStats   `json:"salesStats"`
	ProductStats ProductStats `json:"productStats"`
	UserStats    UserStats    `json:"userStats"`
	OrderStats   OrderStats   `json:"orderStats"`
	RecentOrders RecentOrders `json:"recentOrders"`
	TopProducts  TopProducts  `json:"topProducts"`
}

// SalesStats holds revenue and order counters.
type SalesStats struct {
	TotalRevenue            float64 `json:"totalRevenue"`
	MonthlyRevenue          float64 `json:"monthlyRevenue"`
	WeeklyRevenue           float64 `json:"weeklyRevenue"`
	DailyRevenue            float64 `json:"dailyRevenue"`
	TotalOrders             int64   `json:"totalOrders"`
	MonthlyOrders           int64   `json:"monthlyOrders"`
	WeeklyOrders            int64   `json:"weeklyOrders"`
	DailyOrders             int64   `json:"dailyOrders"`
	AverageOrderValue       float64 `json:"averageOrderValue"`
	RevenueGrowthPercentage float64 `json:"revenueGrowthPercentage"`
	OrderGrowthPercentage   float64 `json:"orderGrowthPercentage"`
}

// ProductStats holds catalog counters.
type ProductStats struct {
	TotalProducts          int64   `json:"totalProducts"`
	ActiveProducts         int64   `json:"activeProducts"`
	InactiveProducts       int64   `json:"inactiveProducts"`
	LowStockProducts       int64   `json:"lowStockProducts"`
	OutOfStockProducts     int64   `json:"outOfStockProducts"`
	TotalCategories        int64   `json:"totalCategories"`
	TopSellingProductID    *int64  `json:"topSellingProductId,omitempty"`
	TopSellingProductName  string  `json:"topSellingProductName,omitempty"`
	TopSellingProductSales *int64  `json:"topSellingProductSales,omitempty"`
}

// UserStats holds user counters.
type UserStats struct {
	TotalUsers           int64   `json:"totalUsers"`
	ActiveUsers          int64   `json:"activeUsers"`
	InactiveUsers        int64   `json:"inactiveUsers"`
	NewUsersToday        int64   `json:"newUsersToday"`
	NewUsersThisWeek     int64   `json:"newUsersThisWeek"`
	NewUsersThisMonth    int64   `json:"newUsersThisMonth"`
	UserGrowthPercentage float64 `json:"userGrowthPercentage"`
	TotalAdmins          int64   `json:"totalAdmins"`
	TotalCustomers       int64   `json:"totalCustomers"`
}

// OrderStats holds order pipeline counters.
type OrderStats struct {
	TotalOrders         int64   `json:"totalOrders"`
	PendingOrders       int64   `json:"pendingOrders"`
	ProcessingOrders    int64   `json:"processingOrders"`
	ShippedOrders       int64   `json:"shippedOrders"`
	DeliveredOrders     int64   `json:"deliveredOrders"`
	CancelledOrders     int64   `json:"cancelledOrders"`
	ReturnedOrders      int64   `json:"returnedOrders"`
	OrderCompletionRate float64 `json:"orderCompletionRate"`
	AverageDeliveryTime float64 `json:"averageDeliveryTime"`
}

// RecentOrder is one row of the recent orders widget.
type RecentOrder struct {
	OrderID       int64   `json:"orderId"`
	CustomerName  string  `json:"customerName"`
	TotalAmount   float64 `json:"totalAmount"`
	Status        string  `json:"status"`
	OrderDate     string  `json:"orderDate"`
	PaymentMethod string  `json:"paymentMethod"`
}

// RecentOrders is the recent orders widget.
type RecentOrders struct {
	RecentOrders []RecentOrder `json:"recentOrders"`
	TotalCount   int64         `json:"totalCount"`
}

// TopProduct is one row of the top products widget.
type TopProduct struct {
	ProductID     int64   `json:"productId"`
	ProductName   string  `json:"productName"`
	CategoryName  string  `json:"categoryName"`
	TotalSold     int64   `json:"totalSold"`
	TotalRevenue  float64 `json:"totalRevenue"`
	ProductImage  string  `json:"productImage"`
	AverageRating float64 `json:"averageRating"`
}

// TopProducts is the top products widget.
type TopProducts struct {
	TopProducts []TopProduct `json:"topProducts"`
	TotalCount  int64        `json:"totalCount"`
}
