package identity

// View identifies a navigable surface of the application
type View string

const (
	ViewCatalog         View = "catalog"
	ViewCart            View = "cart"
	ViewCheckout        View = "checkout"
	ViewMyOrders        View = "my_orders"
	ViewVendorDashboard View = "vendor_dashboard"
	ViewVendorProducts  View = "vendor_products"
	ViewVendorOrders    View = "vendor_orders"
	ViewAdminDashboard  View = "admin_dashboard"
	ViewAdminVendors    View = "admin_vendors"
	ViewAdminProducts   View = "admin_products"
	ViewAdminCategories View = "admin_categories"
	ViewAdminOrders     View = "admin_orders"
	ViewLogin           View = "login"
	ViewRegister        View = "register"
)

// PermittedViews maps an access context to the set of views it may open.
// Vendors whose profile is not approved keep the dashboard but may not
// manage products until approval.
func PermittedViews(role Role, vendorApproved bool, authenticated bool) map[View]bool {
	views := map[View]bool{
		ViewCatalog: true,
	}
	if !authenticated {
		views[ViewLogin] = true
		views[ViewRegister] = true
		return views
	}

	switch role {
	case RoleCustomer:
		views[ViewCart] = true
		views[ViewCheckout] = true
		views[ViewMyOrders] = true
	case RoleVendor:
		views[ViewVendorDashboard] = true
		if vendorApproved {
			views[ViewVendorProducts] = true
			views[ViewVendorOrders] = true
		}
	case RoleAdmin:
		views[ViewAdminDashboard] = true
		views[ViewAdminVendors] = true
		views[ViewAdminProducts] = true
		views[ViewAdminCategories] = true
		views[ViewAdminOrders] = true
	}
	return views
}
