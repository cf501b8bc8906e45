package email

// Plantilla HTML del correo de confirmación de pedido.
const orderConfirmationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <style>
    body { font-family: Arial, Helvetica, sans-serif; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background-color: #2c3e50; color: #fff; padding: 16px; text-align: center; }
    table { width: 100%; border-collapse: collapse; margin: 16px 0; }
    th, td { padding: 8px; border-bottom: 1px solid #ddd; text-align: left; }
    th { background-color: #f4f4f4; }
    .totals td { border: none; padding: 4px 8px; }
    .total-row { font-weight: bold; font-size: 1.1em; }
    .footer { font-size: 0.85em; color: #777; margin-top: 24px; text-align: center; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h2>Confirmación de pedido</h2>
      <p>Factura {{.InvoiceNumber}}</p>
    </div>
    <p>Hola {{.CustomerName}},</p>
    <p>Gracias por tu compra. Este es el detalle de tu pedido del {{.Date}}:</p>
    <table>
      <thead>
        <tr><th>Producto</th><th>Cantidad</th><th>Precio</th><th>Total</th></tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Name}}</td>
          <td>{{.Quantity}}</td>
          <td>${{.Price}}</td>
          <td>${{.LineTotal}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <table class="totals">
      <tr><td>Subtotal</td><td>${{.Subtotal}}</td></tr>
      <tr><td>Descuento</td><td>-${{.Discount}}</td></tr>
      <tr class="total-row"><td>Total</td><td>${{.Total}}</td></tr>
      <tr><td>Método de pago</td><td>{{.PaymentMethod}}</td></tr>
    </table>
    <div class="footer">
      <p>Referencia de transacción: {{.TransactionID}}</p>
      <p>Si no reconoces esta compra, responde a este correo.</p>
    </div>
  </div>
</body>
</html>`
