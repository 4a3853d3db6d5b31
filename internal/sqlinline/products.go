package sqlinline

const QListActiveProducts = `--sql 15c6cba9-a7fa-427d-b804-13d8932a64ff
select id, category_id, name, slug, description, price_cents, currency, active, created_at, updated_at
from products
where active
order by created_at desc
limit $1::int offset $2::int;
`

const QSelectProductBySlug = `--sql 0710a464-7f60-4a85-a265-954ce6ddddc3
select id, category_id, name, slug, description, price_cents, currency, active, created_at, updated_at
from products
where slug = $1::text
limit 1;
`

const QListCategories = `--sql dc331ad1-ea5a-4f22-9d87-cd70753277f1
select id, name, slug, created_at
from categories
order by name asc;
`
