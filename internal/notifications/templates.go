package notifications

import (
	"bytes"
	"html/template"

	"github.com/shopspring/decimal"
)

// money renders a decimal at two places for presentation.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

var templateFuncs = template.FuncMap{
	"money": money,
	"lineTotal": func(price decimal.Decimal, qty int) string {
		return money(price.Mul(decimal.NewFromInt(int64(qty))))
	},
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Funcs(templateFuncs).Parse(`
<h2>Thank you for your order</h2>
<p>Your order <strong>{{.OrderNumber}}</strong> has been received.</p>
<table>
  <tr><th>Product</th><th>Reference</th><th>Qty</th><th>Unit price</th><th>Total</th></tr>
  {{range .Items}}
  <tr>
    <td>{{.Name}}</td>
    <td>{{.Reference}}</td>
    <td>{{.Quantity}}</td>
    <td>{{money .UnitPrice}}</td>
    <td>{{lineTotal .UnitPrice .Quantity}}</td>
  </tr>
  {{end}}
</table>
<p>
  Subtotal: {{money .Subtotal}}<br>
  Shipping: {{money .Shipping}}<br>
  Tax: {{money .Tax}}<br>
  <strong>Total: {{money .Total}}</strong>
</p>
`))

type welcomeData struct {
	Name    string
	AppName string
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<h2>Welcome, {{.Name}}</h2>
<p>Your {{.AppName}} account is ready. Happy shopping!</p>
`))

type loginData struct {
	Name    string
	AppName string
	At      string
}

var loginTmpl = template.Must(template.New("login_notification").Parse(`
<h2>New sign-in</h2>
<p>Hi {{.Name}}, your {{.AppName}} account was accessed on {{.At}}.</p>
<p>If this was not you, please reset your password.</p>
`))

var dailyReportTmpl = template.Must(template.New("daily_report").Funcs(templateFuncs).Parse(`
<h2>Sales report for {{.Date}}</h2>
<p>Orders: {{.TotalOrders}}<br>Revenue: {{money .TotalRevenue}}</p>
{{if .TopProducts}}
<h3>Top products</h3>
<ol>
  {{range .TopProducts}}<li>{{.Name}} ({{.Quantity}} units)</li>{{end}}
</ol>
{{end}}
`))

func renderOrderConfirmation(data OrderEmailData) (string, error) {
	return render(orderConfirmationTmpl, data)
}

func renderWelcome(data welcomeData) (string, error) {
	return render(welcomeTmpl, data)
}

func renderLoginNotification(data loginData) (string, error) {
	return render(loginTmpl, data)
}

func renderDailyReport(data ReportEmailData) (string, error) {
	return render(dailyReportTmpl, data)
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
