package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/bungibobby/shop-terminal-go/internal/cache"
	"github.com/bungibobby/shop-terminal-go/internal/cart"
	"github.com/bungibobby/shop-terminal-go/internal/catalog"
	"github.com/bungibobby/shop-terminal-go/internal/storefront"
	"github.com/bungibobby/shop-terminal-go/internal/wishlist"
)

// ViewState represents the current view in the application.
type ViewState int

const (
	ViewProductList ViewState = iota
	ViewProductDetails
	ViewOptions
	ViewCart
	ViewWishlist
	ViewCheckoutResult
)

// ProductListCacheKey is the cache key for product lists.
type ProductListCacheKey struct {
	Page          int
	PerPage       int
	Search        string
	AvailableOnly bool
}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	// Dependencies
	client    *storefront.Client
	cart      *cart.Service
	catalog   *catalog.Catalog
	wishlist  *wishlist.List
	listCache *cache.Cache[ProductListCacheKey, []storefront.Product]

	// View state
	viewState ViewState
	width     int
	height    int
	styles    Styles

	// Product list view
	productList     list.Model
	products        []storefront.Product
	searchInput     textinput.Model
	showSearch      bool
	availableOnly   bool
	currentPage     int
	perPage         int
	loadingProducts bool
	listSpinner     spinner.Model

	// Product details view
	selectedProduct *storefront.Product
	loadingProduct  bool

	// Option picker view
	optionsForm      *huh.Form
	optionsCompleted bool
	optionValues     map[string]*string

	// Cart view
	cartSelectedIdx int

	// Wishlist view
	wishlistSelectedIdx int

	// Checkout
	checkoutURL string
	checkoutErr error

	// Error handling
	err error
}

// productItem implements list.Item for products.
type productItem struct {
	product storefront.Product
	styles  Styles
}

func (i productItem) Title() string {
	return i.product.Title
}

func (i productItem) Description() string {
	price := i.product.DisplayPrice()
	stock := "Available"
	if !i.product.Available {
		stock = "Sold Out"
	}
	variants := ""
	if i.product.HasVariants() {
		variants = fmt.Sprintf(" [%d variants]", len(i.product.Variants))
	}
	return fmt.Sprintf("%s • %s%s", price, stock, variants)
}

func (i productItem) FilterValue() string {
	return i.product.Title
}

// Messages
type (
	productsLoadedMsg struct {
		products []storefront.Product
	}
	productLoadedMsg struct {
		product *storefront.Product
	}
	checkoutDoneMsg struct {
		result *cart.CheckoutResult
	}
	checkoutFailedMsg struct {
		err error
	}
	errMsg struct {
		err error
	}
)

// NewModel creates a new TUI model. The cart service and wishlist are
// per-session; the client, catalog, and list cache are shared.
func NewModel(client *storefront.Client, cartSvc *cart.Service, cat *catalog.Catalog, wl *wishlist.List, listCache *cache.Cache[ProductListCacheKey, []storefront.Product]) Model {
	styles := DefaultStyles()

	// Initialize spinner
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorViolet)

	// Initialize search input
	ti := textinput.New()
	ti.Placeholder = "Search the drop..."
	ti.CharLimit = 50
	ti.Width = 30

	// Initialize product list
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(colorHighlight).
		BorderLeftForeground(colorHighlight)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(colorSlate).
		BorderLeftForeground(colorHighlight)

	productList := list.New([]list.Item{}, delegate, 0, 0)
	productList.Title = "BUNGI X BOBBY"
	productList.SetShowHelp(false)
	productList.SetFilteringEnabled(true)
	productList.Styles.Title = styles.ListTitle

	return Model{
		client:      client,
		cart:        cartSvc,
		catalog:     cat,
		wishlist:    wl,
		listCache:   listCache,
		viewState:   ViewProductList,
		styles:      styles,
		productList: productList,
		searchInput: ti,
		listSpinner: sp,
		currentPage: 1,
		perPage:     20,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.listSpinner.Tick,
		m.loadProducts(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.productList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.listSpinner, cmd = m.listSpinner.Update(msg)
		cmds = append(cmds, cmd)

	case productsLoadedMsg:
		m.loadingProducts = false
		m.err = nil
		m.products = msg.products
		m.updateProductList()

	case productLoadedMsg:
		m.loadingProduct = false
		m.selectedProduct = msg.product

	case checkoutDoneMsg:
		m.cart.FinishCheckout(msg.result, nil)
		m.checkoutURL = msg.result.URL
		m.checkoutErr = nil
		m.viewState = ViewCheckoutResult

	case checkoutFailedMsg:
		m.cart.FinishCheckout(nil, msg.err)
		m.checkoutURL = ""
		m.checkoutErr = msg.err
		m.viewState = ViewCheckoutResult

	case errMsg:
		m.err = msg.err
		m.loadingProducts = false
		m.loadingProduct = false
	}

	// Update sub-models based on view state
	switch m.viewState {
	case ViewProductList:
		if m.showSearch {
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			cmds = append(cmds, cmd)
		} else {
			var cmd tea.Cmd
			m.productList, cmd = m.productList.Update(msg)
			cmds = append(cmds, cmd)
		}

	case ViewOptions:
		if m.optionsForm != nil {
			form, cmd := m.optionsForm.Update(msg)
			if f, ok := form.(*huh.Form); ok {
				m.optionsForm = f
				if m.optionsForm.State == huh.StateCompleted {
					m.optionsCompleted = true
				}
			}
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys
	switch key {
	case "ctrl+c", "q":
		if m.viewState == ViewProductList && !m.showSearch {
			return m, tea.Quit
		}
	}

	switch m.viewState {
	case ViewProductList:
		return m.handleProductListKeys(msg)
	case ViewProductDetails:
		return m.handleProductDetailsKeys(msg)
	case ViewOptions:
		return m.handleOptionsKeys(msg)
	case ViewCart:
		return m.handleCartKeys(msg)
	case ViewWishlist:
		return m.handleWishlistKeys(msg)
	case ViewCheckoutResult:
		return m.handleCheckoutResultKeys(msg)
	}

	return m, nil
}

func (m Model) handleProductListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showSearch {
		switch key {
		case "enter":
			m.showSearch = false
			m.searchInput.Blur()
			return m, m.loadProducts()
		case "esc":
			m.showSearch = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch key {
	case "/":
		m.showSearch = true
		m.searchInput.Focus()
		return m, textinput.Blink

	case "f":
		m.availableOnly = !m.availableOnly
		return m, m.loadProducts()

	case "r":
		m.listCache.Delete(m.listCacheKey())
		return m, m.loadProducts()

	case "c":
		m.viewState = ViewCart
		m.cartSelectedIdx = 0
		return m, nil

	case "w":
		m.viewState = ViewWishlist
		m.wishlistSelectedIdx = 0
		return m, nil

	case "enter":
		if item, ok := m.productList.SelectedItem().(productItem); ok {
			m.selectedProduct = &item.product
			m.viewState = ViewProductDetails
			m.optionsForm = nil
			m.optionsCompleted = false
			m.loadingProduct = true
			return m, m.loadProduct(item.product.Handle)
		}
	}

	var cmd tea.Cmd
	m.productList, cmd = m.productList.Update(msg)
	return m, cmd
}

func (m Model) handleProductDetailsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc", "backspace":
		m.viewState = ViewProductList
		m.selectedProduct = nil
		return m, nil

	case "w":
		if m.selectedProduct != nil {
			m.toggleWishlist(m.selectedProduct)
		}
		return m, nil

	case "a", "enter":
		if m.selectedProduct == nil || m.loadingProduct {
			return m, nil
		}
		if len(m.selectedProduct.OptionNames()) > 0 {
			m.initOptionsForm()
			m.viewState = ViewOptions
			return m, m.optionsForm.Init()
		}
		// No options to pick: add straight to the cart.
		m.addToCart(nil)
		m.viewState = ViewCart
		m.cartSelectedIdx = 0
		return m, nil

	case "c":
		m.viewState = ViewCart
		m.cartSelectedIdx = 0
		return m, nil
	}

	return m, nil
}

func (m Model) handleOptionsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "esc":
		m.viewState = ViewProductDetails
		m.optionsForm = nil
		m.optionsCompleted = false
		return m, nil

	case "a":
		if m.optionsCompleted && m.selectedProduct != nil {
			m.addToCart(m.pickedOptions())
			m.viewState = ViewCart
			m.cartSelectedIdx = 0
			return m, nil
		}
	}

	// Let the form handle the key
	if m.optionsForm != nil {
		form, cmd := m.optionsForm.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.optionsForm = f
			if m.optionsForm.State == huh.StateCompleted {
				m.optionsCompleted = true
			}
		}
		return m, cmd
	}

	return m, nil
}

func (m Model) handleCartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The cart must not change while a submission is in flight.
	if m.cart.CheckoutBusy() {
		return m, nil
	}

	key := msg.String()
	items := m.cart.Items()

	switch key {
	case "esc", "backspace", "s":
		m.viewState = ViewProductList
		return m, nil

	case "up", "k":
		if m.cartSelectedIdx > 0 {
			m.cartSelectedIdx--
		}
		return m, nil

	case "down", "j":
		if m.cartSelectedIdx < len(items)-1 {
			m.cartSelectedIdx++
		}
		return m, nil

	case "+", "=":
		if m.cartSelectedIdx < len(items) {
			item := items[m.cartSelectedIdx]
			m.cart.SetQuantity(item.ID, item.Quantity+1)
		}
		return m, nil

	case "-":
		if m.cartSelectedIdx < len(items) {
			item := items[m.cartSelectedIdx]
			m.cart.SetQuantity(item.ID, item.Quantity-1)
			if m.cart.IsEmpty() {
				m.cartSelectedIdx = 0
			} else if m.cartSelectedIdx >= len(m.cart.Items()) {
				m.cartSelectedIdx = len(m.cart.Items()) - 1
			}
		}
		return m, nil

	case "d", "delete":
		if m.cartSelectedIdx < len(items) {
			m.cart.Remove(items[m.cartSelectedIdx].ID)
			if m.cartSelectedIdx >= len(m.cart.Items()) && m.cartSelectedIdx > 0 {
				m.cartSelectedIdx--
			}
		}
		return m, nil

	case "o":
		if m.cart.IsEmpty() {
			return m, nil
		}
		attempt, err := m.cart.BeginCheckout()
		if err != nil {
			return m, nil
		}
		return m, tea.Batch(m.listSpinner.Tick, m.submitCheckout(attempt))
	}

	return m, nil
}

func (m Model) handleWishlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	entries := m.wishlist.Entries()

	switch key {
	case "esc", "backspace":
		m.viewState = ViewProductList
		return m, nil

	case "up", "k":
		if m.wishlistSelectedIdx > 0 {
			m.wishlistSelectedIdx--
		}
		return m, nil

	case "down", "j":
		if m.wishlistSelectedIdx < len(entries)-1 {
			m.wishlistSelectedIdx++
		}
		return m, nil

	case "d", "delete":
		if m.wishlistSelectedIdx < len(entries) {
			m.wishlist.Remove(entries[m.wishlistSelectedIdx].ProductID)
			if m.wishlistSelectedIdx >= m.wishlist.Len() && m.wishlistSelectedIdx > 0 {
				m.wishlistSelectedIdx--
			}
		}
		return m, nil

	case "a", "enter":
		if m.wishlistSelectedIdx < len(entries) {
			e := entries[m.wishlistSelectedIdx]
			_, err := m.cart.Add(cart.LineItem{
				ProductID: e.ProductID,
				Title:     e.Title,
				BasePrice: e.Price,
				Image:     e.Image,
			}, 1)
			if err == nil {
				m.viewState = ViewCart
				m.cartSelectedIdx = 0
			}
		}
		return m, nil

	case "c":
		m.viewState = ViewCart
		m.cartSelectedIdx = 0
		return m, nil
	}

	return m, nil
}

func (m Model) handleCheckoutResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "r":
		// Retry after a failure. The cart was left intact, so this submits
		// a brand new checkout request.
		if m.checkoutErr != nil && !m.cart.IsEmpty() && !m.cart.CheckoutBusy() {
			attempt, err := m.cart.BeginCheckout()
			if err != nil {
				return m, nil
			}
			return m, tea.Batch(m.listSpinner.Tick, m.submitCheckout(attempt))
		}
		return m, nil

	case "c", "esc":
		m.viewState = ViewCart
		m.cartSelectedIdx = 0
		return m, nil

	case "enter", "q":
		m.viewState = ViewProductList
		m.checkoutURL = ""
		m.checkoutErr = nil
		return m, nil
	}

	return m, nil
}

func (m *Model) toggleWishlist(p *storefront.Product) {
	m.wishlist.Toggle(wishlist.Entry{
		ProductID: p.Handle,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
	})
}

// addToCart merges the selected product into the cart. When the picked
// attributes match a variant exactly the variant id is recorded up front;
// otherwise checkout resolves it later against the catalog.
func (m *Model) addToCart(attrs map[string]string) {
	p := m.selectedProduct
	if p == nil {
		return
	}

	item := cart.LineItem{
		ProductID:  p.Handle,
		Title:      p.Title,
		BasePrice:  p.Price,
		Image:      p.Image,
		Attributes: attrs,
	}

	if len(attrs) > 0 {
		if v := p.FindVariant(attrs); v != nil {
			item.VariantID = v.ID
			if v.Price > 0 {
				item.BasePrice = v.Price
			}
		}
	} else if v := p.DefaultVariant(); v != nil {
		item.VariantID = v.ID
	}

	if _, err := m.cart.Add(item, 1); err != nil {
		m.err = err
	}
}

func (m *Model) initOptionsForm() {
	p := m.selectedProduct
	if p == nil {
		return
	}

	m.optionValues = make(map[string]*string)
	m.optionsCompleted = false

	var groups []*huh.Group
	for _, name := range p.OptionNames() {
		values := p.OptionValues(name)
		if len(values) == 0 {
			continue
		}

		opts := make([]huh.Option[string], 0, len(values))
		for _, val := range values {
			label := val
			if v := p.FindVariant(map[string]string{name: val}); v != nil && !v.Available {
				label = val + " (sold out)"
			}
			opts = append(opts, huh.NewOption(label, val))
		}

		selected := new(string)
		m.optionValues[name] = selected
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[string]().
				Title("Select "+name).
				Options(opts...).
				Value(selected),
		))
	}

	m.optionsForm = huh.NewForm(groups...).
		WithShowHelp(true).
		WithShowErrors(true)
}

// pickedOptions snapshots the form selections into an attribute map.
func (m *Model) pickedOptions() map[string]string {
	attrs := make(map[string]string, len(m.optionValues))
	for name, val := range m.optionValues {
		if val != nil && *val != "" {
			attrs[name] = *val
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func (m *Model) updateProductList() {
	items := make([]list.Item, len(m.products))
	for i, p := range m.products {
		items[i] = productItem{product: p, styles: m.styles}
	}
	m.productList.SetItems(items)
}

func (m Model) listCacheKey() ProductListCacheKey {
	return ProductListCacheKey{
		Page:          m.currentPage,
		PerPage:       m.perPage,
		Search:        m.searchInput.Value(),
		AvailableOnly: m.availableOnly,
	}
}

func (m Model) loadProducts() tea.Cmd {
	m.loadingProducts = true
	cacheKey := m.listCacheKey()

	return func() tea.Msg {
		products, err := m.listCache.GetOrLoad(cacheKey, func() ([]storefront.Product, error) {
			return m.client.ListProducts(context.Background(), storefront.ListProductsParams{
				Page:          cacheKey.Page,
				PerPage:       cacheKey.PerPage,
				Search:        cacheKey.Search,
				AvailableOnly: cacheKey.AvailableOnly,
			})
		})
		if err != nil {
			return errMsg{err: err}
		}
		return productsLoadedMsg{products: products}
	}
}

func (m Model) loadProduct(handle string) tea.Cmd {
	return func() tea.Msg {
		product, err := m.catalog.Product(context.Background(), handle)
		if err != nil {
			return errMsg{err: err}
		}
		return productLoadedMsg{product: product}
	}
}

// submitCheckout posts a prepared attempt from a background command. The
// attempt is a snapshot, so the command never reads the live cart; the
// store is only touched again in Update when the result message lands.
func (m Model) submitCheckout(attempt *cart.CheckoutAttempt) tea.Cmd {
	return func() tea.Msg {
		result, err := m.cart.SubmitCheckout(context.Background(), attempt)
		if err != nil {
			return checkoutFailedMsg{err: err}
		}
		return checkoutDoneMsg{result: result}
	}
}

// View renders the current view.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string

	switch m.viewState {
	case ViewProductList:
		content = m.viewProductList()
	case ViewProductDetails:
		content = m.viewProductDetails()
	case ViewOptions:
		content = m.viewOptions()
	case ViewCart:
		content = m.viewCart()
	case ViewWishlist:
		content = m.viewWishlist()
	case ViewCheckoutResult:
		content = m.viewCheckoutResult()
	}

	return m.styles.App.Render(content)
}

func (m Model) viewProductList() string {
	var sb strings.Builder

	// Header
	header := m.styles.HeaderTitle.Render("BUNGI X BOBBY — the drop")
	if m.availableOnly {
		header += m.styles.Highlight.Render(" [Available Only]")
	}
	sb.WriteString(m.styles.Header.Render(header))
	sb.WriteString("\n")

	// Search bar
	if m.showSearch {
		sb.WriteString("Search: ")
		sb.WriteString(m.searchInput.View())
		sb.WriteString("\n\n")
	}

	// Loading indicator or product list
	if m.loadingProducts {
		sb.WriteString(m.listSpinner.View())
		sb.WriteString(" Loading products...")
	} else if m.err != nil {
		sb.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
	} else {
		sb.WriteString(m.productList.View())
	}

	// Help bar with cart info
	cartInfo := ""
	if totals := m.cart.Totals(); totals.ItemCount > 0 {
		cartInfo = fmt.Sprintf(" • cart: %d items (%s)", totals.ItemCount, storefront.FormatPrice(totals.Subtotal))
	}
	help := "/ search • f available • r refresh • enter select • c cart • w wishlist • q quit" + cartInfo
	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render(help))

	return sb.String()
}

func (m Model) viewProductDetails() string {
	if m.selectedProduct == nil {
		return "No product selected"
	}

	var sb strings.Builder
	p := m.selectedProduct

	// Product title
	sb.WriteString(m.styles.ProductName.Render(p.Title))
	sb.WriteString("\n\n")

	// Price
	if p.OnSale() {
		sb.WriteString(m.styles.ProductSalePrice.Render(p.DisplayPrice()))
		sb.WriteString(" ")
		sb.WriteString(m.styles.Subtle.Render(fmt.Sprintf("(was %s)", storefront.FormatPrice(p.CompareAtPrice))))
	} else {
		sb.WriteString(m.styles.ProductPrice.Render(p.DisplayPrice()))
	}
	sb.WriteString("\n")

	// Availability
	if p.Available {
		sb.WriteString(m.styles.ProductAvailable.Render("✓ Available"))
	} else {
		sb.WriteString(m.styles.ProductSoldOut.Render("✗ Sold Out"))
	}
	if m.wishlist.Contains(p.Handle) {
		sb.WriteString("  ")
		sb.WriteString(m.styles.Highlight.Render("[saved]"))
	}
	sb.WriteString("\n")

	// Description
	desc := StripHTML(p.DescriptionHTML)
	if desc != "" {
		sb.WriteString("\n")
		sb.WriteString(m.styles.ProductDescription.Render(desc))
		sb.WriteString("\n")
	}

	// Options
	if names := p.OptionNames(); len(names) > 0 {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Subtle.Render("Options:"))
		sb.WriteString("\n")
		for _, name := range names {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", name, strings.Join(p.OptionValues(name), ", ")))
		}
	}

	if m.loadingProduct {
		sb.WriteString("\n")
		sb.WriteString(m.listSpinner.View())
		sb.WriteString(" Loading variants...")
	}

	// Help bar
	sb.WriteString("\n\n")
	helpText := "esc back • w wishlist • c cart"
	if len(p.OptionNames()) > 0 {
		helpText += " • a/enter pick options"
	} else {
		helpText += " • a/enter add to cart"
	}
	sb.WriteString(m.styles.HelpBar.Render(helpText))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewOptions() string {
	if m.selectedProduct == nil {
		return "No product selected"
	}

	var sb strings.Builder

	sb.WriteString(m.styles.OptionsTitle.Render(fmt.Sprintf("Configure: %s", m.selectedProduct.Title)))
	sb.WriteString("\n\n")

	if m.optionsForm != nil {
		sb.WriteString(m.optionsForm.View())
	}

	if m.optionsCompleted {
		sb.WriteString("\n")
		sb.WriteString(m.styles.OptionsSummary.Render(m.renderOptionsSummary()))
	}

	// Help bar
	sb.WriteString("\n\n")
	helpText := "esc back • enter/tab navigate"
	if m.optionsCompleted {
		helpText += " • a add to cart"
	}
	sb.WriteString(m.styles.HelpBar.Render(helpText))

	return m.styles.Box.Render(sb.String())
}

func (m Model) renderOptionsSummary() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Success.Render("✓ Ready to add"))
	sb.WriteString("\n\n")

	p := m.selectedProduct
	sb.WriteString(fmt.Sprintf("Product: %s\n", p.Title))

	attrs := m.pickedOptions()
	for _, name := range p.OptionNames() {
		if val, ok := attrs[name]; ok {
			sb.WriteString(fmt.Sprintf("%s: %s\n", name, val))
		}
	}

	if v := p.FindVariant(attrs); v != nil {
		sb.WriteString(fmt.Sprintf("Price: %s\n", storefront.FormatPrice(v.Price)))
	} else {
		sb.WriteString(fmt.Sprintf("Price: %s\n", p.DisplayPrice()))
	}

	return sb.String()
}

func (m Model) viewCart() string {
	var sb strings.Builder

	// Header
	sb.WriteString(m.styles.HeaderTitle.Render("Your Cart"))
	sb.WriteString("\n\n")

	if m.cart.CheckoutBusy() {
		sb.WriteString(m.listSpinner.View())
		sb.WriteString(" Creating checkout session...")
		return m.styles.Box.Render(sb.String())
	}

	items := m.cart.Items()
	if len(items) == 0 {
		sb.WriteString(m.styles.Subtle.Render("Your cart is empty"))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.HelpBar.Render("esc back to products"))
		return m.styles.Box.Render(sb.String())
	}

	// Cart items
	for i, item := range items {
		prefix := "  "
		if i == m.cartSelectedIdx {
			prefix = m.styles.Highlight.Render("▸ ")
		}

		price := storefront.FormatPrice(item.EffectivePrice())
		if item.HasDiscount() {
			price += m.styles.Subtle.Render(fmt.Sprintf(" (was %s)", storefront.FormatPrice(item.BasePrice)))
		}
		line := fmt.Sprintf("%s%s  %s  x%d  = %s", prefix, item.DisplayName(), price, item.Quantity, storefront.FormatPrice(item.LineTotal()))
		if i == m.cartSelectedIdx {
			sb.WriteString(m.styles.Highlight.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	// Totals
	totals := m.cart.Totals()
	sb.WriteString("\n")
	if totals.TotalSavings > 0 {
		sb.WriteString(m.styles.Success.Render(fmt.Sprintf("You save: %s\n", storefront.FormatPrice(totals.TotalSavings))))
	}
	sb.WriteString(m.styles.ProductPrice.Render(fmt.Sprintf("Subtotal: %s", storefront.FormatPrice(totals.Subtotal))))
	sb.WriteString(fmt.Sprintf(" (%d items)", totals.ItemCount))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Subtle.Render("(Taxes and shipping calculated at checkout)"))
	sb.WriteString("\n")

	// Help bar
	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("↑/↓ select • +/- quantity • d delete • o checkout • s continue shopping"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewWishlist() string {
	var sb strings.Builder

	sb.WriteString(m.styles.HeaderTitle.Render("Saved Items"))
	sb.WriteString("\n\n")

	entries := m.wishlist.Entries()
	if len(entries) == 0 {
		sb.WriteString(m.styles.Subtle.Render("Nothing saved yet"))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.HelpBar.Render("esc back to products"))
		return m.styles.Box.Render(sb.String())
	}

	for i, e := range entries {
		prefix := "  "
		if i == m.wishlistSelectedIdx {
			prefix = m.styles.Highlight.Render("▸ ")
		}
		line := fmt.Sprintf("%s%s  %s", prefix, e.Title, storefront.FormatPrice(e.Price))
		if i == m.wishlistSelectedIdx {
			sb.WriteString(m.styles.Highlight.Render(line))
		} else {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.HelpBar.Render("↑/↓ select • a/enter add to cart • d remove • c cart • esc back"))

	return m.styles.Box.Render(sb.String())
}

func (m Model) viewCheckoutResult() string {
	var sb strings.Builder

	if m.cart.CheckoutBusy() {
		sb.WriteString(m.listSpinner.View())
		sb.WriteString(" Creating checkout session...")
		return m.styles.Box.Render(sb.String())
	}

	if m.checkoutErr != nil {
		sb.WriteString(m.styles.Error.Render("✗ Checkout failed"))
		sb.WriteString("\n\n")
		sb.WriteString(m.checkoutErr.Error())
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.Subtle.Render("Your cart is untouched."))
		sb.WriteString("\n\n")
		sb.WriteString(m.styles.HelpBar.Render("r retry • c back to cart • enter products"))
		return m.styles.Box.Render(sb.String())
	}

	sb.WriteString(m.styles.Success.Render("✓ Checkout session created"))
	sb.WriteString("\n\n")
	sb.WriteString("Finish your order in a browser:")
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Highlight.Render("  " + m.checkoutURL))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Subtle.Render("Your cart has been cleared."))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.HelpBar.Render("enter continue shopping"))

	return m.styles.Box.Render(sb.String())
}

// GetViewState returns the current view state (for testing).
func (m Model) GetViewState() ViewState {
	return m.viewState
}

// GetSelectedProduct returns the currently selected product (for testing).
func (m Model) GetSelectedProduct() *storefront.Product {
	return m.selectedProduct
}
